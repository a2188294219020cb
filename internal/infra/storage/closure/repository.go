package closure

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Repository репозиторий закрытий компании
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCompanyAndDate получает закрытия компании на дату.
// Дата передается строкой, чтобы часовой пояс значения не сдвинул день.
func (r *Repository) GetByCompanyAndDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]domain.Closure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_id",
		"date",
		"start_time",
		"end_time",
		"reason",
		"created_at",
		"updated_at",
	).
		From("company_closures").
		Where(squirrel.Eq{"company_id": companyID}).
		Where("date = ?::date", date.Format(types.DateFormat)).
		OrderBy("start_time ASC NULLS FIRST").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]domain.Closure, 0)
	for rows.Next() {
		var (
			c          domain.Closure
			start, end *types.TimeString
		)
		if err := rows.Scan(
			&c.ID,
			&c.CompanyID,
			&c.Date,
			&start,
			&end,
			&c.Reason,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByCompanyAndDate - scan row: %v", ErrScanRow, err)
		}
		c.StartTime = start
		c.EndTime = end
		closures = append(closures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByCompanyAndDate - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}
