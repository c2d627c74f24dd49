package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shiftInput struct {
	Start      string   `validate:"required,datetime=15:04"`
	WeeklyOffs []string `validate:"omitempty,dive,weekday"`
}

type passwordInput struct {
	Password string `validate:"required,min=8,hasuppercase"`
}

func TestValidateStructWeekday(t *testing.T) {
	assert.Nil(t, ValidateStruct(shiftInput{Start: "09:00", WeeklyOffs: []string{"Sunday", "monday"}}))

	errs := ValidateStruct(shiftInput{Start: "9am", WeeklyOffs: []string{"funday"}})
	require.Len(t, errs, 2)
	tags := []string{errs[0].Tag, errs[1].Tag}
	assert.ElementsMatch(t, []string{"datetime", "weekday"}, tags)
}

func TestValidateStructHasUppercase(t *testing.T) {
	assert.Nil(t, ValidateStruct(passwordInput{Password: "Password123"}))

	errs := ValidateStruct(passwordInput{Password: "password123"})
	require.Len(t, errs, 1)
	assert.Equal(t, "hasuppercase", errs[0].Tag)
	assert.Contains(t, errs[0].Msg, "huruf kapital")
}

func TestParseDateAndStartOfDay(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)

	d, err := ParseDate("2026-10-05", wib)
	require.NoError(t, err)
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, wib, d.Location())

	// 20:00 UTC sudah tanggal 6 di WIB
	start := StartOfDay(time.Date(2026, time.October, 5, 20, 0, 0, 0, time.UTC), wib)
	assert.Equal(t, 6, start.Day())
	assert.Equal(t, 0, start.Hour())

	_, err = ParseDate("05/10/2026", wib)
	assert.Error(t, err)
}

func TestGenerateBase64Key(t *testing.T) {
	key, err := GenerateBase64Key(32)
	require.NoError(t, err)
	assert.NotEmpty(t, key)

	_, err = GenerateBase64Key(16)
	assert.Error(t, err)
}
