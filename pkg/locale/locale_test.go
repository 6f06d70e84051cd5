package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Aktiv", CustomerStatusLabel("aktiv", LangDE))
	assert.Equal(t, "Active", CustomerStatusLabel("aktiv", LangEN))
	assert.Equal(t, "Lead", CustomerStatusLabel("interessent", LangEN))

	assert.Equal(t, "In Bearbeitung", RequestStatusLabel("in_bearbeitung", LangDE))
	assert.Equal(t, "In progress", RequestStatusLabel("in_bearbeitung", LangEN))

	assert.Equal(t, "Bestätigt", AppointmentStatusLabel("bestaetigt", LangDE))
	assert.Equal(t, "Paused", ProjectStatusLabel("pausiert", LangEN))

	assert.Equal(t, "Dringend", PriorityLabel("dringend", LangDE))
	assert.Equal(t, "Urgent", PriorityLabel("dringend", LangEN))
}

func TestStatusLabel_UnknownValuePassesThrough(t *testing.T) {
	assert.Equal(t, "whatever", CustomerStatusLabel("whatever", LangDE))
	assert.Equal(t, "whatever", RequestStatusLabel("whatever", LangEN))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 8, 26, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "26.08.2025", FormatDate(ts))
	assert.Equal(t, "26.08.2025 14:30", FormatDateTime(ts))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0,00 €"},
		{99.9, "99,90 €"},
		{1234.5, "1.234,50 €"},
		{1234567.89, "1.234.567,89 €"},
		{-250.75, "-250,75 €"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.amount))
	}
}
