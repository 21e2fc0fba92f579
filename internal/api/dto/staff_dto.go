package dto

import (
	"time"

	"github.com/spec-kit/hr-portal/internal/domain"
)

// CreateStaffRequest mirrors the intake form fields. The photo travels as
// a separate multipart file part.
type CreateStaffRequest struct {
	FullName       string `form:"fullName" validate:"required"`
	ResumptionDate string `form:"resumptionDate" validate:"required,datetime=2006-01-02"`
	ExitDate       string `form:"exitDate" validate:"omitempty"`
	Location       string `form:"location" validate:"required"`
	Designation    string `form:"designation" validate:"required"`
	HiringOfficer  string `form:"hiringOfficer" validate:"omitempty"`
}

// UpdateStaffRequest carries the editable fields; empty means unchanged.
type UpdateStaffRequest struct {
	FullName    string `json:"fullName" form:"fullName"`
	Designation string `json:"designation" form:"designation"`
	Location    string `json:"location" form:"location"`
}

// ExitStaffRequest marks a record as exited.
type ExitStaffRequest struct {
	ExitDate string `json:"exitDate" validate:"required,datetime=2006-01-02"`
}

// StaffResponse is the wire shape of a staff record.
type StaffResponse struct {
	ID             string    `json:"id"`
	FullName       string    `json:"full_name"`
	ResumptionDate string    `json:"resumption_date"`
	ExitDate       string    `json:"exit_date"`
	Location       string    `json:"location"`
	Designation    string    `json:"designation"`
	HiringOfficer  string    `json:"hiring_officer"`
	PictureURL     string    `json:"picture_url"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewStaffResponse maps a domain record onto the wire shape.
func NewStaffResponse(record *domain.StaffRecord) StaffResponse {
	return StaffResponse{
		ID:             record.ID,
		FullName:       record.FullName,
		ResumptionDate: record.ResumptionDate,
		ExitDate:       record.ExitDate,
		Location:       record.Location,
		Designation:    record.Designation,
		HiringOfficer:  record.HiringOfficer,
		PictureURL:     record.PictureURL,
		Status:         string(record.Status()),
		CreatedAt:      record.CreatedAt,
	}
}
