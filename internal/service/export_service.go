package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/hr-portal/internal/domain"
	apperrors "github.com/spec-kit/hr-portal/pkg/util/errorutil"
)

const exportSheetName = "Staff Records"

// exportTimeLayout renders created_at as a localized timestamp string.
const exportTimeLayout = "02/01/2006 15:04:05"

var exportHeaders = []string{
	"Full Name",
	"Designation",
	"Location",
	"Resumption Date",
	"Status",
	"Exit Date",
	"Hiring Officer",
	"Photo URL",
	"Created At",
}

// ExportService turns a record set into a spreadsheet buffer. Pure and
// stateless: identical input yields byte-identical output, and an empty
// record list produces a headers-only sheet.
type ExportService struct{}

// NewExportService constructs the service.
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportToSpreadsheet renders the records in list order.
func (s *ExportService) ExportToSpreadsheet(records []domain.StaffRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetName(sheet, exportSheetName); err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	headerRow := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		headerRow[i] = h
	}
	if err := setRow(f, 1, headerRow); err != nil {
		return nil, err
	}

	for i, record := range records {
		row := []interface{}{
			record.FullName,
			record.Designation,
			record.Location,
			record.ResumptionDate,
			string(record.Status()),
			exitDateCell(record),
			record.HiringOfficer,
			record.PictureURL,
			record.CreatedAt.Local().Format(exportTimeLayout),
		}
		if err := setRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, rowIdx int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := f.SetSheetRow(exportSheetName, cell, &values); err != nil {
		return apperrors.NewInternalError(fmt.Errorf("row %d: %w", rowIdx, err))
	}
	return nil
}

// exitDateCell exports the raw exit date, empty for active staff. The
// legacy sentinel is normalized to empty like everywhere else.
func exitDateCell(record domain.StaffRecord) string {
	if record.Status() == domain.StaffStatusActive {
		return ""
	}
	return record.ExitDate
}
