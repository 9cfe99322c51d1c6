package domain

import "time"

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "Booked"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment snapshots the patient email and doctor reference at booking
// time, so later profile or roster edits never rewrite history.
type Appointment struct {
	ID           string            `json:"id"`
	PatientID    string            `json:"patient_id"`
	PatientEmail string            `json:"patient_email"`
	Doctor       string            `json:"doctor"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Status       AppointmentStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
}

func (a Appointment) Item() map[string]any {
	return map[string]any{
		"id":            a.ID,
		"patient_id":    a.PatientID,
		"patient_email": a.PatientEmail,
		"doctor":        a.Doctor,
		"date":          a.Date,
		"time":          a.Time,
		"status":        string(a.Status),
		"created_at":    a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func AppointmentFromItem(it map[string]any) Appointment {
	created, _ := time.Parse(time.RFC3339, str(it["created_at"]))
	return Appointment{
		ID:           str(it["id"]),
		PatientID:    str(it["patient_id"]),
		PatientEmail: str(it["patient_email"]),
		Doctor:       str(it["doctor"]),
		Date:         str(it["date"]),
		Time:         str(it["time"]),
		Status:       AppointmentStatus(str(it["status"])),
		CreatedAt:    created,
	}
}
