// Package locale maps the German status values stored in the database to
// display labels and formats dates and currency amounts the German way.
package locale

import (
	"fmt"
	"strings"
	"time"
)

const (
	LangDE = "de"
	LangEN = "en"
)

// label holds the German and English display text for one status value.
type label struct {
	de string
	en string
}

var customerStatusLabels = map[string]label{
	"aktiv":       {de: "Aktiv", en: "Active"},
	"inaktiv":     {de: "Inaktiv", en: "Inactive"},
	"interessent": {de: "Interessent", en: "Lead"},
}

var projectStatusLabels = map[string]label{
	"geplant":       {de: "Geplant", en: "Planned"},
	"aktiv":         {de: "Aktiv", en: "Active"},
	"pausiert":      {de: "Pausiert", en: "Paused"},
	"abgeschlossen": {de: "Abgeschlossen", en: "Completed"},
	"storniert":     {de: "Storniert", en: "Cancelled"},
}

var appointmentStatusLabels = map[string]label{
	"geplant":       {de: "Geplant", en: "Scheduled"},
	"bestaetigt":    {de: "Bestätigt", en: "Confirmed"},
	"abgeschlossen": {de: "Abgeschlossen", en: "Completed"},
	"storniert":     {de: "Storniert", en: "Cancelled"},
}

var requestStatusLabels = map[string]label{
	"neu":            {de: "Neu", en: "New"},
	"zugewiesen":     {de: "Zugewiesen", en: "Assigned"},
	"in_bearbeitung": {de: "In Bearbeitung", en: "In progress"},
	"abgeschlossen":  {de: "Abgeschlossen", en: "Completed"},
	"storniert":      {de: "Storniert", en: "Cancelled"},
}

var priorityLabels = map[string]label{
	"niedrig":  {de: "Niedrig", en: "Low"},
	"normal":   {de: "Normal", en: "Normal"},
	"hoch":     {de: "Hoch", en: "High"},
	"dringend": {de: "Dringend", en: "Urgent"},
}

func pick(labels map[string]label, value, lang string) string {
	l, ok := labels[value]
	if !ok {
		return value
	}
	if lang == LangEN {
		return l.en
	}
	return l.de
}

func CustomerStatusLabel(status, lang string) string {
	return pick(customerStatusLabels, status, lang)
}

func ProjectStatusLabel(status, lang string) string {
	return pick(projectStatusLabels, status, lang)
}

func AppointmentStatusLabel(status, lang string) string {
	return pick(appointmentStatusLabels, status, lang)
}

func RequestStatusLabel(status, lang string) string {
	return pick(requestStatusLabels, status, lang)
}

func PriorityLabel(priority, lang string) string {
	return pick(priorityLabels, priority, lang)
}

// FormatDate renders a date as DD.MM.YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateTime renders a timestamp as DD.MM.YYYY HH:MM.
func FormatDateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// FormatCurrency renders an amount in euros the German way:
// dot as thousands separator, comma as decimal separator.
// Example: 1234.5 -> "1.234,50 €"
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	// Insert thousands separators right to left
	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	formatted := fmt.Sprintf("%s,%s €", b.String(), decPart)
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}
