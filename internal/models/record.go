package models

import "time"

// Confirmation represents a single confirmation record.
// DateOfBirth and ConfirmationDate carry date precision only; the time
// portion is always midnight UTC.
type Confirmation struct {
	ID               int64     `json:"id"`
	FullName         string    `json:"full_name"`
	DateOfBirth      time.Time `json:"date_of_birth"`
	ConfirmationDate time.Time `json:"confirmation_date"`
	ChurchName       string    `json:"church_name"`
	PriestName       string    `json:"priest_name"`
	SponsorName      string    `json:"sponsor_name"` // optional
	Remarks          string    `json:"remarks"`      // optional
	CreatedAt        time.Time `json:"created_at"`
}
