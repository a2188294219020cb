package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги и специальности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServicesByIDs получает услуги компании по списку ID.
// Отсутствующие ID просто не попадают в результат, проверка на полноту - у вызывающего.
func (r *Repository) GetServicesByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error) {
	if len(ids) == 0 {
		return []domain.Service{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"company_id",
		"name",
		"price",
		"duration_minutes",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"company_id": companyID, "id": ids}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0, len(ids))
	for rows.Next() {
		var s domain.Service
		if err := rows.Scan(
			&s.ID,
			&s.CompanyID,
			&s.Name,
			&s.Price,
			&s.DurationMinutes,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetServicesByIDs - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// FindCommonSpecialty возвращает специальность, общую для наибольшего числа услуг.
// При равенстве выбирается меньший id.
func (r *Repository) FindCommonSpecialty(ctx context.Context, companyID uuid.UUID, serviceIDs []uuid.UUID) (uuid.UUID, error) {
	if len(serviceIDs) == 0 {
		return uuid.Nil, ErrSpecialtyNotInferred
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := commonSpecialtyQuery(companyID, serviceIDs).ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: FindCommonSpecialty - build select query: %v", ErrBuildQuery, err)
	}

	var specialtyID uuid.UUID
	err = executor.QueryRowContext(ctx, query, args...).Scan(&specialtyID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrSpecialtyNotInferred
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: FindCommonSpecialty - scan specialty: %v", ErrScanRow, err)
	}

	return specialtyID, nil
}

func commonSpecialtyQuery(companyID uuid.UUID, serviceIDs []uuid.UUID) squirrel.SelectBuilder {
	return psqlbuilder.Select("ss.specialty_id").
		From("service_specialties ss").
		Join("services s ON s.id = ss.service_id").
		Join("specialties sp ON sp.id = ss.specialty_id").
		Where(squirrel.Eq{
			"s.company_id":  companyID,
			"sp.company_id": companyID,
			"ss.service_id": serviceIDs,
		}).
		GroupBy("ss.specialty_id").
		OrderBy("COUNT(*) DESC", "ss.specialty_id ASC").
		Limit(1)
}

// SpecialtyExists проверяет, что специальность принадлежит компании
func (r *Repository) SpecialtyExists(ctx context.Context, companyID, specialtyID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("specialties").
		Where(squirrel.Eq{"id": specialtyID, "company_id": companyID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: SpecialtyExists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: SpecialtyExists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}
