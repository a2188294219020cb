package conflicts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/memstore"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func TestHasOverlap(t *testing.T) {
	store := memstore.New()
	svc := NewService(store.Appointments(), logger.Nop())
	ctx := context.Background()

	companyID, providerID, otherProvider := uuid.New(), uuid.New(), uuid.New()
	base := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

	booked := domain.Appointment{
		ID:         uuid.New(),
		CompanyID:  companyID,
		ClientID:   uuid.New(),
		ProviderID: providerID,
		Status:     domain.StatusScheduled,
		Start:      base,
		End:        base.Add(time.Hour),
	}
	store.AddAppointment(booked)
	store.AddAppointment(domain.Appointment{
		CompanyID:  companyID,
		ClientID:   uuid.New(),
		ProviderID: providerID,
		Status:     domain.StatusCancelled,
		Start:      base.Add(2 * time.Hour),
		End:        base.Add(3 * time.Hour),
	})

	tests := []struct {
		name  string
		query domain.OverlapQuery
		want  bool
	}{
		{
			name:  "back to back is allowed",
			query: domain.OverlapQuery{CompanyID: companyID, ProviderID: &providerID, Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)},
			want:  false,
		},
		{
			name:  "partial overlap",
			query: domain.OverlapQuery{CompanyID: companyID, ProviderID: &providerID, Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)},
			want:  true,
		},
		{
			name:  "other provider is free",
			query: domain.OverlapQuery{CompanyID: companyID, ProviderID: &otherProvider, Start: base, End: base.Add(time.Hour)},
			want:  false,
		},
		{
			name:  "company wide check",
			query: domain.OverlapQuery{CompanyID: companyID, Start: base, End: base.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "cancelled does not count",
			query: domain.OverlapQuery{CompanyID: companyID, ProviderID: &providerID, Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour)},
			want:  false,
		},
		{
			name:  "own row excluded",
			query: domain.OverlapQuery{CompanyID: companyID, ProviderID: &providerID, Start: base, End: base.Add(time.Hour), ExcludeAppointmentID: ptr.Ptr(booked.ID)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasOverlap(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasOverlapForClient(t *testing.T) {
	store := memstore.New()
	svc := NewService(store.Appointments(), logger.Nop())
	ctx := context.Background()

	clientID := uuid.New()
	base := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
	store.AddAppointment(domain.Appointment{
		CompanyID:  uuid.New(),
		ClientID:   clientID,
		ProviderID: uuid.New(),
		Status:     domain.StatusConfirmed,
		Start:      base,
		End:        base.Add(time.Hour),
	})

	got, err := svc.HasOverlapForClient(ctx, domain.ClientOverlapQuery{ClientID: clientID, Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute)})
	require.NoError(t, err)
	assert.True(t, got, "any provider and any company")

	got, err = svc.HasOverlapForClient(ctx, domain.ClientOverlapQuery{ClientID: clientID, Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasOverlap_Errors(t *testing.T) {
	store := memstore.New()
	svc := NewService(store.Appointments(), logger.Nop())
	base := time.Now()

	_, err := svc.HasOverlap(context.Background(), domain.OverlapQuery{Start: base, End: base})
	assert.ErrorIs(t, err, ErrInvalidRange)

	store.FailWith = errors.New("db down")
	_, err = svc.HasOverlap(context.Background(), domain.OverlapQuery{Start: base, End: base.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrInternal)
	_, err = svc.HasOverlapForClient(context.Background(), domain.ClientOverlapQuery{Start: base, End: base.Add(time.Hour)})
	assert.ErrorIs(t, err, ErrInternal)
}
