package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var columns = []string{
	"p.id",
	"p.company_id",
	"p.name",
	"p.calendar_id",
	"COALESCE(p.active, TRUE)",
	"p.created_at",
	"p.updated_at",
}

// Repository репозиторий специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает специалиста по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From("providers p").
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.CompanyID,
		&p.Name,
		&p.CalendarID,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan provider: %v", ErrScanRow, err)
	}

	return &p, nil
}

// HasSpecialty проверяет, что у специалиста есть специальность
func (r *Repository) HasSpecialty(ctx context.Context, providerID, specialtyID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := hasSpecialtyQuery(providerID, specialtyID).ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasSpecialty - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasSpecialty - scan row: %v", ErrScanRow, err)
	}

	return exists, nil
}

// bySpecialty базовый запрос: активные специалисты компании с указанной специальностью
func bySpecialty(companyID, specialtyID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("providers p").
		Join("provider_specialties ps ON ps.provider_id = p.id").
		Where(squirrel.Eq{"p.company_id": companyID, "ps.specialty_id": specialtyID}).
		Where("COALESCE(p.active, TRUE)")
}

// GetBySpecialty получает специалистов со специальностью без учета занятости
func (r *Repository) GetBySpecialty(ctx context.Context, companyID, specialtyID uuid.UUID) ([]domain.Provider, error) {
	query, args, err := bySpecialty(companyID, specialtyID).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySpecialty - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetBySpecialty", query, args)
}

// GetAvailable получает специалистов со специальностью, у которых нет
// незавершенных приёмов, пересекающихся с [start, end)
func (r *Repository) GetAvailable(ctx context.Context, companyID, specialtyID uuid.UUID, start, end time.Time) ([]domain.Provider, error) {
	query, args, err := availableQuery(companyID, specialtyID, start, end).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailable - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetAvailable", query, args)
}

// GetWithLeastLoad получает специалиста с минимальным числом незавершенных приёмов,
// начинающихся в [dayStart, dayEnd). При равенстве побеждает меньший id.
func (r *Repository) GetWithLeastLoad(ctx context.Context, companyID, specialtyID uuid.UUID, dayStart, dayEnd time.Time) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := leastLoadQuery(companyID, specialtyID, dayStart, dayEnd).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithLeastLoad - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.CompanyID,
		&p.Name,
		&p.CalendarID,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithLeastLoad - scan provider: %v", ErrScanRow, err)
	}

	return &p, nil
}

const notBusy = "NOT EXISTS (SELECT 1 FROM appointments a WHERE a.provider_id = p.id" +
	" AND a.status IN (?, ?) AND a.start_at < ? AND a.end_at > ?)"

func hasSpecialtyQuery(providerID, specialtyID uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("provider_specialties").
		Where(squirrel.Eq{"provider_id": providerID, "specialty_id": specialtyID}).
		Suffix(")")
}

func availableQuery(companyID, specialtyID uuid.UUID, start, end time.Time) squirrel.SelectBuilder {
	return bySpecialty(companyID, specialtyID).
		Where(notBusy, domain.StatusScheduled, domain.StatusConfirmed, end, start).
		OrderBy("p.id ASC")
}

// leastLoadQuery аргументы LEFT JOIN идут раньше аргументов WHERE
func leastLoadQuery(companyID, specialtyID uuid.UUID, dayStart, dayEnd time.Time) squirrel.SelectBuilder {
	return bySpecialty(companyID, specialtyID).
		LeftJoin(
			"appointments a ON a.provider_id = p.id AND a.status IN (?, ?) AND a.start_at >= ? AND a.start_at < ?",
			domain.StatusScheduled, domain.StatusConfirmed, dayStart, dayEnd,
		).
		GroupBy("p.id").
		OrderBy("COUNT(a.id) ASC", "p.id ASC").
		Limit(1)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0)
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(
			&p.ID,
			&p.CompanyID,
			&p.Name,
			&p.CalendarID,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return providers, nil
}
