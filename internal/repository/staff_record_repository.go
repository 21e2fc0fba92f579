package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-portal/internal/domain"
)

// StaffRecordRepository handles persistence for staff records.
type StaffRecordRepository interface {
	Insert(ctx context.Context, record *domain.StaffRecord) error
	Update(ctx context.Context, id string, patch domain.StaffRecordPatch) (*domain.StaffRecord, error)
	SelectAll(ctx context.Context) ([]domain.StaffRecord, error)
	SelectByID(ctx context.Context, id string) (*domain.StaffRecord, error)
	Delete(ctx context.Context, id string) error
}

type staffRecordRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRecordRepository instantiates the repository.
func NewStaffRecordRepository(pool *pgxpool.Pool) StaffRecordRepository {
	return &staffRecordRepository{pool: pool}
}

const recordColumns = `id, full_name, resumption_date, exit_date, location, designation, hiring_officer, picture_url, created_at`

func (r *staffRecordRepository) Insert(ctx context.Context, record *domain.StaffRecord) error {
	const query = `
        INSERT INTO staff_records (full_name, resumption_date, exit_date, location, designation, hiring_officer, picture_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		record.FullName,
		record.ResumptionDate,
		record.ExitDate,
		record.Location,
		record.Designation,
		record.HiringOfficer,
		record.PictureURL,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *staffRecordRepository) Update(ctx context.Context, id string, patch domain.StaffRecordPatch) (*domain.StaffRecord, error) {
	sets := []string{}
	args := []any{}

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if patch.FullName != nil {
		add("full_name", *patch.FullName)
	}
	if patch.Designation != nil {
		add("designation", *patch.Designation)
	}
	if patch.Location != nil {
		add("location", *patch.Location)
	}
	if patch.PictureURL != nil {
		add("picture_url", *patch.PictureURL)
	}
	if patch.ExitDate != nil {
		add("exit_date", *patch.ExitDate)
	}
	if len(sets) == 0 {
		return r.SelectByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
        UPDATE staff_records SET %s WHERE id=$%d
        RETURNING %s`, strings.Join(sets, ", "), len(args), recordColumns)

	record, err := scanRecord(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *staffRecordRepository) SelectAll(ctx context.Context) ([]domain.StaffRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_records ORDER BY created_at DESC`, recordColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StaffRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	return result, rows.Err()
}

func (r *staffRecordRepository) SelectByID(ctx context.Context, id string) (*domain.StaffRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM staff_records WHERE id=$1`, recordColumns)
	return scanRecord(r.pool.QueryRow(ctx, query, id))
}

func (r *staffRecordRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff_records WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// scanRecord converts a loosely-typed row into the explicit value type at
// the store boundary. resumption_date is a DATE column; it travels through
// the domain as an ISO string.
func scanRecord(row pgx.Row) (*domain.StaffRecord, error) {
	var (
		record     domain.StaffRecord
		resumption time.Time
	)
	if err := row.Scan(
		&record.ID,
		&record.FullName,
		&resumption,
		&record.ExitDate,
		&record.Location,
		&record.Designation,
		&record.HiringOfficer,
		&record.PictureURL,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	record.ResumptionDate = resumption.Format("2006-01-02")
	return &record, nil
}
