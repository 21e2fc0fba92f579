package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/hr-portal/internal/domain"
)

func exportFixture() []domain.StaffRecord {
	return []domain.StaffRecord{
		{
			ID:             "id-2",
			FullName:       "John Roe",
			ResumptionDate: "2023-03-01",
			ExitDate:       "2024-06-01",
			Location:       "Lagos",
			Designation:    "Engineer",
			HiringOfficer:  "A. Adams",
			PictureURL:     "https://cdn.example.com/johnroe_1.jpg",
			CreatedAt:      time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:             "id-1",
			FullName:       "Jane Doe",
			ResumptionDate: "2024-01-15",
			ExitDate:       "",
			Location:       "HQ",
			Designation:    "Analyst",
			HiringOfficer:  "R. Smith",
			PictureURL:     "https://cdn.example.com/janedoe_2.jpg",
			CreatedAt:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		},
	}
}

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Staff Records")
	require.NoError(t, err)
	return rows
}

func TestExportToSpreadsheet(t *testing.T) {
	svc := NewExportService()

	data, err := svc.ExportToSpreadsheet(exportFixture())
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"Full Name", "Designation", "Location", "Resumption Date",
		"Status", "Exit Date", "Hiring Officer", "Photo URL", "Created At",
	}, rows[0])

	// list order is preserved
	assert.Equal(t, "John Roe", rows[1][0])
	assert.Equal(t, "Exited", rows[1][4])
	assert.Equal(t, "2024-06-01", rows[1][5])

	assert.Equal(t, "Jane Doe", rows[2][0])
	assert.Equal(t, "Active", rows[2][4])
	// active staff export an empty exit date; GetRows trims the trailing
	// empty cell
	require.GreaterOrEqual(t, len(rows[2]), 5)
	if len(rows[2]) > 5 {
		assert.Equal(t, "", rows[2][5])
	}
}

func TestExportToSpreadsheet_Idempotent(t *testing.T) {
	svc := NewExportService()
	records := exportFixture()

	first, err := svc.ExportToSpreadsheet(records)
	require.NoError(t, err)
	second, err := svc.ExportToSpreadsheet(records)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must yield byte-identical output")
}

func TestExportToSpreadsheet_Empty(t *testing.T) {
	svc := NewExportService()

	data, err := svc.ExportToSpreadsheet(nil)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 1, "empty record set produces a headers-only sheet")
	assert.Equal(t, "Full Name", rows[0][0])
}

func TestExportToSpreadsheet_SentinelExitDate(t *testing.T) {
	svc := NewExportService()

	records := []domain.StaffRecord{{
		FullName:       "Sam Lee",
		ResumptionDate: "2024-05-01",
		ExitDate:       domain.StillWorkingSentinel,
		Location:       "HQ",
		Designation:    "Clerk",
		CreatedAt:      time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}}

	data, err := svc.ExportToSpreadsheet(records)
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, "Active", rows[1][4])
}
