// Package memstore хранилище в памяти с контрактами репозиториев из internal/infra/storage.
// Используется в тестах сервисов и use case.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/client"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Store состояние всех таблиц
type Store struct {
	mu sync.Mutex

	companies           map[uuid.UUID]domain.Company
	hours               []domain.BusinessHour
	closures            []domain.Closure
	specialties         map[uuid.UUID]domain.Specialty
	providers           map[uuid.UUID]domain.Provider
	providerSpecialties map[uuid.UUID][]uuid.UUID
	services            map[uuid.UUID]domain.Service
	serviceSpecialties  map[uuid.UUID][]uuid.UUID
	clients             map[uuid.UUID]domain.Client
	appointments        map[uuid.UUID]*domain.Appointment

	// FailWith, если задан, возвращается всеми методами записей
	FailWith error
}

// New создает пустое хранилище
func New() *Store {
	return &Store{
		companies:           make(map[uuid.UUID]domain.Company),
		specialties:         make(map[uuid.UUID]domain.Specialty),
		providers:           make(map[uuid.UUID]domain.Provider),
		providerSpecialties: make(map[uuid.UUID][]uuid.UUID),
		services:            make(map[uuid.UUID]domain.Service),
		serviceSpecialties:  make(map[uuid.UUID][]uuid.UUID),
		clients:             make(map[uuid.UUID]domain.Client),
		appointments:        make(map[uuid.UUID]*domain.Appointment),
	}
}

func (s *Store) AddCompany(c domain.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
}

func (s *Store) AddBusinessHour(bh domain.BusinessHour) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bh.ID == uuid.Nil {
		bh.ID = uuid.New()
	}
	s.hours = append(s.hours, bh)
}

func (s *Store) AddClosure(c domain.Closure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.closures = append(s.closures, c)
}

func (s *Store) AddSpecialty(sp domain.Specialty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specialties[sp.ID] = sp
}

func (s *Store) AddProvider(p domain.Provider, specialtyIDs ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[p.ID] = p
	s.providerSpecialties[p.ID] = specialtyIDs
}

func (s *Store) AddService(svc domain.Service, specialtyIDs ...uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.services[svc.ID] = svc
	s.serviceSpecialties[svc.ID] = specialtyIDs
}

func (s *Store) AddClient(c domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
}

// AddAppointment кладет запись в обход проверок пересечения
func (s *Store) AddAppointment(a domain.Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.appointments[a.ID] = cloneAppointment(&a)
}

// Appointment возвращает копию записи
func (s *Store) Appointment(id uuid.UUID) (*domain.Appointment, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments[id]
	if !ok {
		return nil, false
	}
	return cloneAppointment(a), true
}

// AppointmentCount количество сохраненных записей
func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s} }
func (s *Store) BusinessHours() *BusinessHourRepo { return &BusinessHourRepo{s} }
func (s *Store) Closures() *ClosureRepo { return &ClosureRepo{s} }
func (s *Store) Providers() *ProviderRepo { return &ProviderRepo{s} }
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s} }
func (s *Store) Clients() *ClientRepo { return &ClientRepo{s} }
func (s *Store) Appointments() *AppointmentRepo { return &AppointmentRepo{s} }
func (s *Store) TxManager() *TxManager { return &TxManager{s: s} }

// CompanyRepo ---------------------------------------------------------------

type CompanyRepo struct{ s *Store }

func (r *CompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.companies[id]
	if !ok {
		return nil, company.ErrCompanyNotFound
	}
	return &c, nil
}

// BusinessHourRepo ----------------------------------------------------------

type BusinessHourRepo struct{ s *Store }

func (r *BusinessHourRepo) GetByCompanyAndDay(_ context.Context, companyID uuid.UUID, day int) ([]domain.BusinessHour, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.BusinessHour, 0)
	for _, bh := range r.s.hours {
		if bh.CompanyID == companyID && bh.DayOfWeek == day {
			out = append(out, bh)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.IsBefore(out[j].StartTime) })
	return out, nil
}

func (r *BusinessHourRepo) GetByCompany(_ context.Context, companyID uuid.UUID) ([]domain.BusinessHour, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.BusinessHour, 0)
	for _, bh := range r.s.hours {
		if bh.CompanyID == companyID {
			out = append(out, bh)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime.IsBefore(out[j].StartTime)
	})
	return out, nil
}

// ClosureRepo ---------------------------------------------------------------

type ClosureRepo struct{ s *Store }

func (r *ClosureRepo) GetByCompanyAndDate(_ context.Context, companyID uuid.UUID, date time.Time) ([]domain.Closure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Closure, 0)
	for _, c := range r.s.closures {
		if c.CompanyID == companyID && types.SameDate(c.Date, date) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ProviderRepo --------------------------------------------------------------

type ProviderRepo struct{ s *Store }

func (r *ProviderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.providers[id]
	if !ok {
		return nil, provider.ErrProviderNotFound
	}
	return &p, nil
}

func (r *ProviderRepo) GetBySpecialty(_ context.Context, companyID, specialtyID uuid.UUID) ([]domain.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.bySpecialty(companyID, specialtyID), nil
}

func (r *ProviderRepo) GetAvailable(_ context.Context, companyID, specialtyID uuid.UUID, start, end time.Time) ([]domain.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Provider, 0)
	for _, p := range r.s.bySpecialty(companyID, specialtyID) {
		busy := false
		for _, a := range r.s.appointments {
			if a.ProviderID == p.ID && !a.Status.IsTerminal() && a.Overlaps(start, end) {
				busy = true
				break
			}
		}
		if !busy {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProviderRepo) GetWithLeastLoad(_ context.Context, companyID, specialtyID uuid.UUID, dayStart, dayEnd time.Time) (*domain.Provider, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var (
		best      *domain.Provider
		bestCount int
	)
	for _, p := range r.s.bySpecialty(companyID, specialtyID) {
		count := r.s.countStarts(p.ID, dayStart, dayEnd)
		if best == nil || count < bestCount {
			p := p
			best, bestCount = &p, count
		}
	}
	if best == nil {
		return nil, provider.ErrProviderNotFound
	}
	return best, nil
}

func (r *ProviderRepo) HasSpecialty(_ context.Context, providerID, specialtyID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sp := range r.s.providerSpecialties[providerID] {
		if sp == specialtyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) bySpecialty(companyID, specialtyID uuid.UUID) []domain.Provider {
	out := make([]domain.Provider, 0)
	for _, p := range s.providers {
		if p.CompanyID != companyID || !p.Active {
			continue
		}
		for _, sp := range s.providerSpecialties[p.ID] {
			if sp == specialtyID {
				out = append(out, p)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0 })
	return out
}

func (s *Store) countStarts(providerID uuid.UUID, from, to time.Time) int {
	count := 0
	for _, a := range s.appointments {
		if a.ProviderID == providerID && !a.Status.IsTerminal() && !a.Start.Before(from) && a.Start.Before(to) {
			count++
		}
	}
	return count
}

// CatalogRepo ---------------------------------------------------------------

type CatalogRepo struct{ s *Store }

func (r *CatalogRepo) GetServicesByIDs(_ context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]domain.Service, 0, len(ids))
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		svc, ok := r.s.services[id]
		if ok && svc.CompanyID == companyID && !seen[id] {
			out = append(out, svc)
			seen[id] = true
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CatalogRepo) FindCommonSpecialty(_ context.Context, companyID uuid.UUID, serviceIDs []uuid.UUID) (uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := make(map[uuid.UUID]int)
	for _, id := range serviceIDs {
		svc, ok := r.s.services[id]
		if !ok || svc.CompanyID != companyID {
			continue
		}
		for _, sp := range r.s.serviceSpecialties[id] {
			if spec, ok := r.s.specialties[sp]; ok && spec.CompanyID == companyID {
				counts[sp]++
			}
		}
	}
	if len(counts) == 0 {
		return uuid.Nil, catalog.ErrSpecialtyNotInferred
	}
	var (
		best      uuid.UUID
		bestCount int
	)
	for id, c := range counts {
		if c > bestCount || (c == bestCount && bytes.Compare(id[:], best[:]) < 0) {
			best, bestCount = id, c
		}
	}
	return best, nil
}

func (r *CatalogRepo) SpecialtyExists(_ context.Context, companyID, specialtyID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.specialties[specialtyID]
	return ok && sp.CompanyID == companyID, nil
}

// ClientRepo ----------------------------------------------------------------

type ClientRepo struct{ s *Store }

func (r *ClientRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, client.ErrClientNotFound
	}
	return &c, nil
}

// AppointmentRepo -----------------------------------------------------------

// AppointmentRepo повторяет exclusion constraints таблицы appointments
type AppointmentRepo struct{ s *Store }

func (r *AppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if err := r.s.checkExclusion(a); err != nil {
		return nil, err
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	for i := range a.Services {
		a.Services[i].AppointmentID = a.ID
	}
	r.s.appointments[a.ID] = cloneAppointment(a)
	return a, nil
}

func (r *AppointmentRepo) Update(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	if _, ok := r.s.appointments[a.ID]; !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	if err := r.s.checkExclusion(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = time.Now()
	for i := range a.Services {
		a.Services[i].AppointmentID = a.ID
	}
	r.s.appointments[a.ID] = cloneAppointment(a)
	return a, nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	a, ok := r.s.appointments[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return cloneAppointment(a), nil
}

func (r *AppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return r.s.FailWith
	}
	a, ok := r.s.appointments[id]
	if !ok {
		return appointment.ErrAppointmentNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (r *AppointmentRepo) HasOverlap(_ context.Context, q domain.OverlapQuery) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return false, r.s.FailWith
	}
	for _, a := range r.s.appointments {
		if a.CompanyID != q.CompanyID || a.Status.IsTerminal() {
			continue
		}
		if q.ProviderID != nil && a.ProviderID != *q.ProviderID {
			continue
		}
		if q.ExcludeAppointmentID != nil && a.ID == *q.ExcludeAppointmentID {
			continue
		}
		if a.Overlaps(q.Start, q.End) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepo) HasOverlapForClient(_ context.Context, q domain.ClientOverlapQuery) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return false, r.s.FailWith
	}
	for _, a := range r.s.appointments {
		if a.ClientID != q.ClientID || a.Status.IsTerminal() {
			continue
		}
		if q.ExcludeAppointmentID != nil && a.ID == *q.ExcludeAppointmentID {
			continue
		}
		if a.Overlaps(q.Start, q.End) {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepo) CountByProviderInRange(_ context.Context, providerID uuid.UUID, from, to time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	return r.s.countStarts(providerID, from, to), nil
}

func (r *AppointmentRepo) GetPastScheduled(_ context.Context, now time.Time) ([]*domain.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return nil, r.s.FailWith
	}
	out := make([]*domain.Appointment, 0)
	for _, a := range r.s.appointments {
		if a.Status != domain.StatusScheduled {
			continue
		}
		loc := time.UTC
		if c, ok := r.s.companies[a.CompanyID]; ok {
			loc = c.Location(time.UTC)
		}
		if types.StartOfDate(a.Start.In(loc)).Before(types.StartOfDate(now.In(loc))) {
			out = append(out, cloneAppointment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *AppointmentRepo) CancelBatch(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailWith != nil {
		return 0, r.s.FailWith
	}
	var affected int64
	for _, id := range ids {
		if a, ok := r.s.appointments[id]; ok && a.Status == domain.StatusScheduled {
			a.Status = domain.StatusCancelled
			affected++
		}
	}
	return affected, nil
}

// checkExclusion ведет себя как exclusion constraints на provider_id и client_id
func (s *Store) checkExclusion(a *domain.Appointment) error {
	if a.Status.IsTerminal() {
		return nil
	}
	for _, other := range s.appointments {
		if other.ID == a.ID || other.Status.IsTerminal() || !other.Overlaps(a.Start, a.End) {
			continue
		}
		if other.ProviderID == a.ProviderID {
			return appointment.ErrOverlap
		}
		if other.ClientID == a.ClientID {
			return appointment.ErrClientOverlap
		}
	}
	return nil
}

func cloneAppointment(a *domain.Appointment) *domain.Appointment {
	c := *a
	c.Services = append([]domain.AppointmentService(nil), a.Services...)
	if a.EventID != nil {
		eventID := *a.EventID
		c.EventID = &eventID
	}
	return &c
}

// TxManager ----------------------------------------------------------------

// TxManager откатывает записи при ошибке внутри транзакции
type TxManager struct {
	s *Store

	// Calls число начатых транзакций
	Calls int
}

func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++

	m.s.mu.Lock()
	snapshot := make(map[uuid.UUID]*domain.Appointment, len(m.s.appointments))
	for id, a := range m.s.appointments {
		snapshot[id] = cloneAppointment(a)
	}
	m.s.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.s.mu.Lock()
		m.s.appointments = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}
