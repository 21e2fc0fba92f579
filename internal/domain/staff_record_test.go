package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaffRecordStatus(t *testing.T) {
	tests := []struct {
		name     string
		exitDate string
		want     StaffStatus
	}{
		{"empty exit date", "", StaffStatusActive},
		{"still working sentinel", StillWorkingSentinel, StaffStatusActive},
		{"real exit date", "2024-06-01", StaffStatusExited},
		{"arbitrary non-empty value", "resigned", StaffStatusExited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := StaffRecord{ExitDate: tt.exitDate}
			assert.Equal(t, tt.want, record.Status())
		})
	}
}

func TestStaffRecordPatchIsEmpty(t *testing.T) {
	assert.True(t, StaffRecordPatch{}.IsEmpty())

	name := "Jane"
	assert.False(t, StaffRecordPatch{FullName: &name}.IsEmpty())

	exit := ""
	assert.False(t, StaffRecordPatch{ExitDate: &exit}.IsEmpty())
}
