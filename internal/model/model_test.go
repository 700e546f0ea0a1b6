package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiration(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		wantErr error
		want    time.Time
	}{
		{"date only", "2026-01-31", nil, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2025-03-02T08:00:00Z", nil, time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)},
		{"past", "2024-12-31", ErrPastExpiration, time.Time{}},
		{"now is not future", "2025-03-01T12:00:00Z", ErrPastExpiration, time.Time{}},
		{"garbage", "next tuesday", ErrInvalidExpiration, time.Time{}},
		{"empty", "", ErrInvalidExpiration, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &MedicineRequest{Expiration: tt.raw}
			err := req.ParseExpiration(now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(req.ExpiresAt))
		})
	}
}

func TestNormalizeLowercasesNames(t *testing.T) {
	cat := &CategoryRequest{Name: "  Antibiotics "}
	cat.Normalize()
	assert.Equal(t, "antibiotics", cat.Name)

	user := &RegisterUserRequest{Name: "Dr House", Email: "House@Clinic.COM", Phone: " 0123456789 "}
	user.Normalize()
	assert.Equal(t, "dr house", user.Name)
	assert.Equal(t, "house@clinic.com", user.Email)
	assert.Equal(t, "0123456789", user.Phone)
}

func TestPrescriptionRequestDefaultsStatus(t *testing.T) {
	req := &PrescriptionRequest{}
	req.Normalize()
	assert.Equal(t, PrescriptionPending, req.Status)

	req = &PrescriptionRequest{Status: "Dispensed"}
	req.Normalize()
	assert.Equal(t, PrescriptionDispensed, req.Status)
}

func TestHealthCheckRequestDedupesDiseases(t *testing.T) {
	d1, d2 := uuid.New(), uuid.New()
	req := &HealthCheckRequest{Signs: []string{" fever "}, Diseases: []uuid.UUID{d1, d2, d1}}
	req.Normalize()

	assert.Equal(t, []uuid.UUID{d1, d2}, req.Diseases)
	assert.Equal(t, []string{"fever"}, req.Signs)
}

func TestIncludes(t *testing.T) {
	include := []Relation{RelPatient, RelDoctor}
	assert.True(t, Includes(include, RelDoctor))
	assert.False(t, Includes(include, RelCategory))
	assert.False(t, Includes(nil, RelCategory))
}
