package domain

import "time"

// StaffStatus is derived from the exit date, never stored.
type StaffStatus string

const (
	StaffStatusActive StaffStatus = "Active"
	StaffStatusExited StaffStatus = "Exited"
)

// StillWorkingSentinel is a legacy marker some clients send instead of an
// empty exit date; it means the same thing.
const StillWorkingSentinel = "Still Working"

// StaffRecord models one staff row as captured by the intake form.
type StaffRecord struct {
	ID             string
	FullName       string
	ResumptionDate string
	ExitDate       string
	Location       string
	Designation    string
	HiringOfficer  string
	PictureURL     string
	CreatedAt      time.Time
}

// Status reports Active unless a real exit date is present.
func (r StaffRecord) Status() StaffStatus {
	if r.ExitDate == "" || r.ExitDate == StillWorkingSentinel {
		return StaffStatusActive
	}
	return StaffStatusExited
}

// StaffRecordPatch carries the partial-update fields for a record. Nil
// fields are left untouched.
type StaffRecordPatch struct {
	FullName    *string
	Designation *string
	Location    *string
	PictureURL  *string
	ExitDate    *string
}

// IsEmpty reports whether the patch changes nothing.
func (p StaffRecordPatch) IsEmpty() bool {
	return p.FullName == nil && p.Designation == nil && p.Location == nil &&
		p.PictureURL == nil && p.ExitDate == nil
}
