package businesshours

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/cache"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

type fakeRepo struct {
	hours     []domain.BusinessHour
	err       error
	weekCalls int
	dayCalls  int
}

func (r *fakeRepo) GetByCompanyAndDay(_ context.Context, companyID uuid.UUID, day int) ([]domain.BusinessHour, error) {
	r.dayCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.BusinessHour, 0)
	for _, bh := range r.hours {
		if bh.CompanyID == companyID && bh.DayOfWeek == day {
			out = append(out, bh)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetByCompany(_ context.Context, companyID uuid.UUID) ([]domain.BusinessHour, error) {
	r.weekCalls++
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.BusinessHour, 0)
	for _, bh := range r.hours {
		if bh.CompanyID == companyID {
			out = append(out, bh)
		}
	}
	return out, nil
}

func interval(companyID uuid.UUID, day int, start, end string) domain.BusinessHour {
	return domain.BusinessHour{
		ID:        uuid.New(),
		CompanyID: companyID,
		DayOfWeek: day,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func newCache() *cache.Expirable[Key, []domain.BusinessHour] {
	return cache.New[Key, []domain.BusinessHour](100, time.Minute)
}

func TestIsoToStoreDay(t *testing.T) {
	assert.Equal(t, 1, IsoToStoreDay(1)) // понедельник
	assert.Equal(t, 6, IsoToStoreDay(6)) // суббота
	assert.Equal(t, 0, IsoToStoreDay(7)) // воскресенье
}

func TestHoursFor_CachedWeek(t *testing.T) {
	companyID := uuid.New()
	repo := &fakeRepo{hours: []domain.BusinessHour{
		interval(companyID, 1, "14:00", "18:00"),
		interval(companyID, 1, "09:00", "12:00"),
		interval(companyID, 2, "09:00", "18:00"),
	}}
	svc := NewService(repo, newCache(), logger.Nop())
	ctx := context.Background()

	monday, err := svc.HoursFor(ctx, companyID, 1)
	require.NoError(t, err)
	assert.Len(t, monday, 2)

	sunday, err := svc.HoursFor(ctx, companyID, 0)
	require.NoError(t, err)
	assert.Empty(t, sunday)

	tuesday, err := svc.HoursFor(ctx, companyID, 2)
	require.NoError(t, err)
	assert.Len(t, tuesday, 1)

	assert.Equal(t, 1, repo.weekCalls, "week loaded once and served from cache")
	assert.Zero(t, repo.dayCalls)
}

func TestHoursFor_InvalidateReloads(t *testing.T) {
	companyID := uuid.New()
	repo := &fakeRepo{hours: []domain.BusinessHour{interval(companyID, 1, "09:00", "18:00")}}
	svc := NewService(repo, newCache(), logger.Nop())
	ctx := context.Background()

	_, err := svc.HoursFor(ctx, companyID, 1)
	require.NoError(t, err)

	repo.hours = append(repo.hours, interval(companyID, 1, "19:00", "21:00"))
	cached, err := svc.HoursFor(ctx, companyID, 1)
	require.NoError(t, err)
	assert.Len(t, cached, 1, "stale until invalidated")

	svc.Invalidate(companyID)
	fresh, err := svc.HoursFor(ctx, companyID, 1)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
	assert.Equal(t, 2, repo.weekCalls)

	svc.InvalidateAll()
	_, err = svc.HoursFor(ctx, companyID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.weekCalls)
}

func TestHoursFor_NoCache(t *testing.T) {
	companyID := uuid.New()
	repo := &fakeRepo{hours: []domain.BusinessHour{interval(companyID, 1, "09:00", "18:00")}}
	svc := NewService(repo, nil, logger.Nop())

	_, err := svc.HoursFor(context.Background(), companyID, 1)
	require.NoError(t, err)
	_, err = svc.HoursFor(context.Background(), companyID, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.dayCalls)
	assert.NotPanics(t, func() { svc.Invalidate(companyID) })
}

func TestHoursFor_Errors(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, newCache(), logger.Nop())

	_, err := svc.HoursFor(context.Background(), uuid.New(), 7)
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = svc.HoursFor(context.Background(), uuid.New(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestIsWithin(t *testing.T) {
	companyID := uuid.New()
	repo := &fakeRepo{hours: []domain.BusinessHour{
		interval(companyID, 1, "09:00", "12:00"),
		interval(companyID, 1, "12:00", "18:00"),
	}}
	svc := NewService(repo, newCache(), logger.Nop())
	ctx := context.Background()

	monday := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return monday.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"opening hour", at(9, 0), at(10, 0), true},
		{"ends at closing", at(17, 0), at(18, 0), true},
		{"before opening", at(8, 30), at(9, 30), false},
		{"past closing", at(17, 30), at(18, 30), false},
		{"spans contiguous intervals", at(11, 30), at(12, 30), false},
		{"closed day", at(9, 0).AddDate(0, 0, 6), at(10, 0).AddDate(0, 0, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsWithin(ctx, companyID, tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
