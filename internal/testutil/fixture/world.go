// Package fixture собирает сервисы планировщика поверх memstore для тестов use case и хендлеров
package fixture

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availability"
	"github.com/m04kA/SMC-AppointmentService/internal/service/businesshours"
	"github.com/m04kA/SMC-AppointmentService/internal/service/closures"
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflicts"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentService/internal/service/specialties"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/memstore"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/tenant"
	"github.com/m04kA/SMC-AppointmentService/pkg/clock"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Идентификаторы тестового мира
var (
	CompanyID     = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	SpecialtyID   = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")
	ProviderA     = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	ProviderB     = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	ClientID      = uuid.MustParse("00000000-0000-0000-0000-0000000000d1")
	OtherClientID = uuid.MustParse("00000000-0000-0000-0000-0000000000d2")
	CleaningID    = uuid.MustParse("00000000-0000-0000-0000-0000000000f1")
	WhiteningID   = uuid.MustParse("00000000-0000-0000-0000-0000000000f2")
)

// Monday понедельник, на который ориентированы тесты
var Monday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

// At момент дня day в часах и минутах
func At(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// World компания, открытая пн-пт 09:00-18:00 UTC, со специальностью и двумя специалистами.
// Часы зафиксированы на понедельнике 07:00.
type World struct {
	Store     *memstore.Store
	Clock     *clock.FixedTimeProvider
	Logger    *logger.Logger
	Hours     *businesshours.Service
	Resolver  *specialties.Service
	Validator *availability.Validator
	Engine    *slots.Engine
	Tenants   *tenant.Resolver
}

// New создает мир
func New() *World {
	w := &World{
		Store:  memstore.New(),
		Clock:  &clock.FixedTimeProvider{At: At(Monday, 7, 0)},
		Logger: logger.Nop(),
	}

	s := w.Store
	s.AddCompany(domain.Company{ID: CompanyID, Name: "Clinic", Timezone: "UTC"})
	for day := 1; day <= 5; day++ {
		s.AddBusinessHour(domain.BusinessHour{
			CompanyID: CompanyID,
			DayOfWeek: day,
			StartTime: types.MustTimeString("09:00"),
			EndTime:   types.MustTimeString("18:00"),
		})
	}
	s.AddSpecialty(domain.Specialty{ID: SpecialtyID, CompanyID: CompanyID, Name: "Dentistry"})
	s.AddProvider(domain.Provider{ID: ProviderA, CompanyID: CompanyID, Name: "Dr. A", CalendarID: "a@calendar", Active: true}, SpecialtyID)
	s.AddProvider(domain.Provider{ID: ProviderB, CompanyID: CompanyID, Name: "Dr. B", CalendarID: "b@calendar", Active: true}, SpecialtyID)
	s.AddService(domain.Service{ID: CleaningID, CompanyID: CompanyID, Name: "Cleaning", Price: 100, DurationMinutes: 30}, SpecialtyID)
	s.AddService(domain.Service{ID: WhiteningID, CompanyID: CompanyID, Name: "Whitening", Price: 250.5, DurationMinutes: 60}, SpecialtyID)
	s.AddClient(domain.Client{ID: ClientID, CompanyID: CompanyID, Name: "Maria"})
	s.AddClient(domain.Client{ID: OtherClientID, CompanyID: CompanyID, Name: "Joao"})

	w.Hours = businesshours.NewService(s.BusinessHours(), nil, w.Logger)
	w.Resolver = specialties.NewService(s.Catalog(), s.Providers(), s.Appointments(), w.Logger)
	w.Validator = availability.NewValidator(
		w.Hours,
		closures.NewService(s.Closures(), w.Logger),
		conflicts.NewService(s.Appointments(), w.Logger),
		w.Clock,
	)
	w.Engine = slots.NewEngine(w.Validator, w.Hours, w.Resolver, w.Clock, nil, w.Logger, slots.Options{})
	w.Tenants = tenant.NewResolver(s.Companies(), s.Catalog(), s.Clients(), time.UTC, w.Logger)

	return w
}

// Book кладет запись SCHEDULED в обход проверок
func (w *World) Book(providerID, clientID uuid.UUID, start time.Time, minutes int) uuid.UUID {
	id := uuid.New()
	w.Store.AddAppointment(domain.Appointment{
		ID:         id,
		CompanyID:  CompanyID,
		ClientID:   clientID,
		ProviderID: providerID,
		Status:     domain.StatusScheduled,
		Start:      start,
		End:        start.Add(time.Duration(minutes) * time.Minute),
	})
	return id
}
