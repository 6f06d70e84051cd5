package response

import "time"

type DashboardOverviewResponse struct {
	Customers            CustomerStatsResponse    `json:"customers"`
	Requests             RequestStatsResponse     `json:"requests"`
	Appointments         AppointmentStatsResponse `json:"appointments"`
	RecentRequests       []ContactRequestResponse `json:"recent_requests"`
	RecentCustomers      []CustomerResponse       `json:"recent_customers"`
	TodaysAppointments   []AppointmentResponse    `json:"todays_appointments"`
	UpcomingAppointments []AppointmentResponse    `json:"upcoming_appointments"`
	GeneratedAt          time.Time                `json:"generated_at"`
}

type DashboardAlert struct {
	Severity    string  `json:"severity"` // "info", "warning", "critical"
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	ReferenceID *string `json:"reference_id,omitempty"`
}

type DashboardAlertsResponse struct {
	Alerts      []DashboardAlert `json:"alerts"`
	GeneratedAt time.Time        `json:"generated_at"`
}
