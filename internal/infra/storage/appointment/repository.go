package appointment

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
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const clientOverlapConstraint = "appointments_client_no_overlap"

var columns = []string{
	"a.id",
	"a.company_id",
	"a.client_id",
	"a.provider_id",
	"a.event_id",
	"a.status",
	"a.notes",
	"a.start_at",
	"a.end_at",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий записей на приём
type Repository struct {
	db           DBExecutor
	fallbackZone string
}

// NewRepository создает новый экземпляр репозитория записей.
// fallback используется для компаний с пустым или неизвестным PostgreSQL часовым поясом.
func NewRepository(db DBExecutor, fallback *time.Location) *Repository {
	if fallback == nil {
		fallback = time.UTC
	}
	return &Repository{db: db, fallbackZone: fallback.String()}
}

// Create создает запись вместе со строками услуг.
// Вызывается внутри сериализуемой транзакции (через context), иначе запись и строки
// услуг сохраняются неатомарно.
//
// Пересечение с другой незавершенной записью специалиста или клиента отклоняется
// exclusion constraint и возвращается как ErrOverlap или ErrClientOverlap.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"id",
			"company_id",
			"client_id",
			"provider_id",
			"event_id",
			"status",
			"notes",
			"start_at",
			"end_at",
		).
		Values(
			a.ID,
			a.CompanyID,
			a.ClientID,
			a.ProviderID,
			a.EventID,
			a.Status,
			a.Notes,
			a.Start,
			a.End,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if txmanager.IsExclusionViolation(err) {
			return nil, overlapError("Create", err)
		}
		// %w сохраняет *pq.Error для повтора сериализуемой транзакции
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if err := r.insertServices(ctx, executor, a.ID, a.Services); err != nil {
		return nil, err
	}
	for i := range a.Services {
		a.Services[i].AppointmentID = a.ID
	}

	return a, nil
}

// Update сохраняет новое время, заметки и статус записи и заменяет строки услуг
func (r *Repository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_at", a.Start).
		Set("end_at", a.End).
		Set("notes", a.Notes).
		Set("status", a.Status).
		Set("event_id", a.EventID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if txmanager.IsExclusionViolation(err) {
			return nil, overlapError("Update", err)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("appointment_services").
		Where(squirrel.Eq{"appointment_id": a.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build delete services query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("%w: Update - delete services: %w", ErrExecQuery, err)
	}

	if err := r.insertServices(ctx, executor, a.ID, a.Services); err != nil {
		return nil, err
	}
	for i := range a.Services {
		a.Services[i].AppointmentID = a.ID
	}

	return a, nil
}

func (r *Repository) insertServices(ctx context.Context, executor DBExecutor, appointmentID uuid.UUID, lines []domain.AppointmentService) error {
	if len(lines) == 0 {
		return nil
	}

	builder := psqlbuilder.Insert("appointment_services").
		Columns(
			"appointment_id",
			"service_id",
			"company_id",
			"service_name",
			"price_service",
			"duration_minutes",
		)
	for _, l := range lines {
		builder = builder.Values(
			appointmentID,
			l.ServiceID,
			l.CompanyID,
			l.ServiceName,
			l.Price,
			l.DurationMinutes,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertServices - build insert query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertServices - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает запись со строками услуг.
// В транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From("appointments a").
		Where(squirrel.Eq{"a.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	byID := map[uuid.UUID]*domain.Appointment{a.ID: a}
	if err := r.loadServices(ctx, executor, byID); err != nil {
		return nil, err
	}

	return a, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsExclusionViolation(err) {
			return overlapError("UpdateStatus", err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// HasOverlap проверяет пересечение [start, end) с незавершенными записями компании.
// Границы не пересекаются: запись 9:00-10:00 не мешает 10:00-11:00.
func (r *Repository) HasOverlap(ctx context.Context, q domain.OverlapQuery) (bool, error) {
	return r.exists(ctx, "HasOverlap", overlapQuery(q))
}

// HasOverlapForClient проверяет пересечение с записями клиента у любых специалистов
func (r *Repository) HasOverlapForClient(ctx context.Context, q domain.ClientOverlapQuery) (bool, error) {
	return r.exists(ctx, "HasOverlapForClient", clientOverlapQuery(q))
}

func overlapQuery(q domain.OverlapQuery) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("1").
		From("appointments a").
		Where(squirrel.Eq{"a.company_id": q.CompanyID, "a.status": domain.NonTerminalStatuses}).
		Where(squirrel.Lt{"a.start_at": q.End}).
		Where(squirrel.Gt{"a.end_at": q.Start})
	if q.ProviderID != nil {
		builder = builder.Where(squirrel.Eq{"a.provider_id": *q.ProviderID})
	}
	if q.ExcludeAppointmentID != nil {
		builder = builder.Where(squirrel.NotEq{"a.id": *q.ExcludeAppointmentID})
	}
	return builder
}

func clientOverlapQuery(q domain.ClientOverlapQuery) squirrel.SelectBuilder {
	builder := psqlbuilder.Select("1").
		From("appointments a").
		Where(squirrel.Eq{"a.client_id": q.ClientID, "a.status": domain.NonTerminalStatuses}).
		Where(squirrel.Lt{"a.start_at": q.End}).
		Where(squirrel.Gt{"a.end_at": q.Start})
	if q.ExcludeAppointmentID != nil {
		builder = builder.Where(squirrel.NotEq{"a.id": *q.ExcludeAppointmentID})
	}
	return builder
}

func (r *Repository) exists(ctx context.Context, op string, builder squirrel.SelectBuilder) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var found bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&found); err != nil {
		return false, fmt.Errorf("%w: %s - scan: %w", ErrScanRow, op, err)
	}
	return found, nil
}

// CountByProviderInRange считает незавершенные записи специалиста, начинающиеся в [from, to)
func (r *Repository) CountByProviderInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments a").
		Where(squirrel.Eq{"a.provider_id": providerID, "a.status": domain.NonTerminalStatuses}).
		Where(squirrel.GtOrEq{"a.start_at": from}).
		Where(squirrel.Lt{"a.start_at": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByProviderInRange - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByProviderInRange - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

// GetPastScheduled получает записи в статусе SCHEDULED, дата начала которых
// (в часовом поясе компании) раньше даты now. В транзакции строки блокируются.
// Пояс, которого нет в pg_timezone_names, заменяется запасным, как и в Company.Location.
func (r *Repository) GetPastScheduled(ctx context.Context, now time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := pastScheduledQuery(now, r.fallbackZone, dbmetrics.IsInTransaction(ctx)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPastScheduled - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPastScheduled - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	byID := make(map[uuid.UUID]*domain.Appointment)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPastScheduled - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
		byID[a.ID] = a
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPastScheduled - rows error: %v", ErrScanRow, err)
	}

	if err := r.loadServices(ctx, executor, byID); err != nil {
		return nil, err
	}

	return appointments, nil
}

func pastScheduledQuery(now time.Time, fallbackZone string, lock bool) squirrel.SelectBuilder {
	builder := psqlbuilder.Select(columns...).
		From("appointments a").
		Join("companies c ON c.id = a.company_id").
		LeftJoin("pg_timezone_names tz ON tz.name = c.timezone").
		Where(squirrel.Eq{"a.status": domain.StatusScheduled}).
		Where(
			"(a.start_at AT TIME ZONE COALESCE(tz.name, ?))::date < (?::timestamptz AT TIME ZONE COALESCE(tz.name, ?))::date",
			fallbackZone, now, fallbackZone,
		).
		OrderBy("a.start_at ASC")
	if lock {
		builder = builder.Suffix("FOR UPDATE OF a")
	}
	return builder
}

// CancelBatch переводит записи в CANCELLED одним запросом.
// Затрагиваются только записи, всё ещё находящиеся в SCHEDULED.
func (r *Repository) CancelBatch(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids, "status": domain.StatusScheduled}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelBatch - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelBatch - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelBatch - get rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}

// loadServices догружает строки услуг для набора записей одним запросом
func (r *Repository) loadServices(ctx context.Context, executor DBExecutor, byID map[uuid.UUID]*domain.Appointment) error {
	if len(byID) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	query, args, err := psqlbuilder.Select(
		"appointment_id",
		"service_id",
		"company_id",
		"service_name",
		"price_service",
		"duration_minutes",
		"created_at",
		"updated_at",
	).
		From("appointment_services").
		Where(squirrel.Eq{"appointment_id": ids}).
		OrderBy("created_at ASC", "service_name ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l domain.AppointmentService
		if err := rows.Scan(
			&l.AppointmentID,
			&l.ServiceID,
			&l.CompanyID,
			&l.ServiceName,
			&l.Price,
			&l.DurationMinutes,
			&l.CreatedAt,
			&l.UpdatedAt,
		); err != nil {
			return fmt.Errorf("%w: loadServices - scan row: %v", ErrScanRow, err)
		}
		if a, ok := byID[l.AppointmentID]; ok {
			a.Services = append(a.Services, l)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadServices - rows error: %v", ErrScanRow, err)
	}
	return nil
}

// overlapError различает пересечение у клиента и у специалиста по имени constraint
func overlapError(op string, err error) error {
	if txmanager.ConstraintName(err) == clientOverlapConstraint {
		return fmt.Errorf("%w: %s - %v", ErrClientOverlap, op, err)
	}
	return fmt.Errorf("%w: %s - %v", ErrOverlap, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a       domain.Appointment
		eventID sql.NullString
	)
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.ClientID,
		&a.ProviderID,
		&eventID,
		&a.Status,
		&a.Notes,
		&a.Start,
		&a.End,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if eventID.Valid {
		a.EventID = &eventID.String
	}
	return &a, nil
}
