package businesshour

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var columns = []string{
	"id",
	"company_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий рабочих часов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCompanyAndDay получает интервалы работы компании на день недели (0 = воскресенье),
// упорядоченные по времени начала
func (r *Repository) GetByCompanyAndDay(ctx context.Context, companyID uuid.UUID, dayOfWeek int) ([]domain.BusinessHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("business_hours").
		Where(squirrel.Eq{"company_id": companyID, "day_of_week": dayOfWeek}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBusinessHours(rows)
}

// GetByCompany получает всю неделю компании
func (r *Repository) GetByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.BusinessHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("business_hours").
		Where(squirrel.Eq{"company_id": companyID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompany - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBusinessHours(rows)
}

func scanBusinessHours(rows *sql.Rows) ([]domain.BusinessHour, error) {
	hours := make([]domain.BusinessHour, 0)

	for rows.Next() {
		var bh domain.BusinessHour
		if err := rows.Scan(
			&bh.ID,
			&bh.CompanyID,
			&bh.DayOfWeek,
			&bh.StartTime,
			&bh.EndTime,
			&bh.CreatedAt,
			&bh.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanBusinessHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, bh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBusinessHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}
