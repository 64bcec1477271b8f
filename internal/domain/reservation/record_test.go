package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/salonbelle/salon-scheduler/internal/httperr"
	"github.com/salonbelle/salon-scheduler/internal/models"
)

func TestNewFormatNormalize(t *testing.T) {
	serviceID := uint(7)
	at := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

	rec, err := NewFormat{Row: models.Reservation{
		ID:            12,
		ReferenceCode: "abc-123",
		ClientID:      3,
		StylistID:     9,
		ServiceID:     &serviceID,
		ScheduledAt:   at,
		Status:        "confirmed",
		Notes:         "window seat",
	}}.Normalize(time.UTC)

	assert.NoError(t, err)
	assert.Equal(t, uint(12), rec.ID)
	assert.Equal(t, "abc-123", rec.RefCode)
	assert.Equal(t, uint(3), rec.ClientRef)
	assert.Equal(t, uint(9), rec.StylistRef)
	assert.Equal(t, &serviceID, rec.ServiceRef)
	assert.Equal(t, at, rec.ScheduledAt)
	assert.Equal(t, StatusConfirmed, rec.Status)
	assert.False(t, rec.Legacy)
	assert.Empty(t, rec.ClientLabel)
}

func TestLegacyFormatNormalize(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Paris")
	assert.NoError(t, err)

	rec, err := LegacyFormat{Row: models.LegacyBooking{
		ID:          4,
		StylistID:   9,
		ClientName:  "Marie Dupont",
		ServiceName: "Coloration",
		BookingDate: "2026-04-02",
		BookingTime: "10:30",
		Status:      "pending",
		Comments:    "first visit",
	}}.Normalize(loc)

	assert.NoError(t, err)
	assert.True(t, rec.Legacy)
	assert.Equal(t, "Marie Dupont", rec.ClientLabel)
	assert.Equal(t, "Coloration", rec.ServiceLabel)
	assert.Equal(t, "first visit", rec.Notes)
	assert.Equal(t, StatusPending, rec.Status)

	want := time.Date(2026, 4, 2, 10, 30, 0, 0, loc)
	assert.True(t, rec.ScheduledAt.Equal(want))
}

func TestLegacyFormatNormalizeRejectsBadInstant(t *testing.T) {
	cases := []models.LegacyBooking{
		{BookingDate: "02/04/2026", BookingTime: "10:30"},
		{BookingDate: "2026-04-02", BookingTime: "25:99"},
		{BookingDate: "", BookingTime: ""},
	}

	for _, row := range cases {
		_, err := LegacyFormat{Row: row}.Normalize(time.UTC)
		assert.Error(t, err)
		assert.Equal(t, "invalid_legacy_booking", httperr.BusinessCode(err))
	}
}
