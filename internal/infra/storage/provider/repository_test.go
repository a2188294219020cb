package provider

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	companyID   = uuid.MustParse("00000000-0000-0000-0000-0000000000c1")
	specialtyID = uuid.MustParse("00000000-0000-0000-0000-0000000000e1")
	providerID  = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
)

const selectProviders = "SELECT p.id, p.company_id, p.name, p.calendar_id, COALESCE(p.active, TRUE), p.created_at, p.updated_at" +
	" FROM providers p JOIN provider_specialties ps ON ps.provider_id = p.id"

func TestLeastLoadQuery(t *testing.T) {
	dayStart := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := leastLoadQuery(companyID, specialtyID, dayStart, dayEnd).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectProviders+
		" LEFT JOIN appointments a ON a.provider_id = p.id AND a.status IN ($1, $2) AND a.start_at >= $3 AND a.start_at < $4"+
		" WHERE p.company_id = $5 AND ps.specialty_id = $6 AND COALESCE(p.active, TRUE)"+
		" GROUP BY p.id ORDER BY COUNT(a.id) ASC, p.id ASC LIMIT 1", query)
	assert.Equal(t, []interface{}{
		domain.StatusScheduled, domain.StatusConfirmed, dayStart, dayEnd,
		companyID.String(), specialtyID.String(),
	}, args)
}

func TestAvailableQuery(t *testing.T) {
	start := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	query, args, err := availableQuery(companyID, specialtyID, start, end).ToSql()
	require.NoError(t, err)

	assert.Equal(t, selectProviders+
		" WHERE p.company_id = $1 AND ps.specialty_id = $2 AND COALESCE(p.active, TRUE)"+
		" AND NOT EXISTS (SELECT 1 FROM appointments a WHERE a.provider_id = p.id"+
		" AND a.status IN ($3, $4) AND a.start_at < $5 AND a.end_at > $6)"+
		" ORDER BY p.id ASC", query)
	// пересечение: начало чужой записи раньше нашего конца, конец позже нашего начала
	assert.Equal(t, []interface{}{
		companyID.String(), specialtyID.String(),
		domain.StatusScheduled, domain.StatusConfirmed, end, start,
	}, args)
}

func TestHasSpecialtyQuery(t *testing.T) {
	query, args, err := hasSpecialtyQuery(providerID, specialtyID).ToSql()
	require.NoError(t, err)

	assert.Equal(t, "SELECT EXISTS ( SELECT 1 FROM provider_specialties WHERE provider_id = $1 AND specialty_id = $2 )", query)
	assert.Equal(t, []interface{}{providerID.String(), specialtyID.String()}, args)
}
