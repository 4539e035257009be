package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "plain", input: "09:00", want: "09:00"},
		{name: "single digit hour padded", input: "9:05", want: "09:05"},
		{name: "midnight", input: "00:00", want: "00:00"},
		{name: "last minute", input: "23:59", want: "23:59"},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing minutes", input: "12", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "ab:cd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMinutes(t *testing.T) {
	got, err := FromMinutes(9*60 + 30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), got)

	got, err = FromMinutes(0)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:00"), got)

	_, err = FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)

	_, err = FromMinutes(-1)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestMinutesRoundTrip(t *testing.T) {
	for _, m := range []int{0, 1, 59, 60, 9*60 + 30, 23*60 + 59} {
		ts, err := FromMinutes(m)
		require.NoError(t, err)

		back, err := ts.Minutes()
		require.NoError(t, err)
		assert.Equal(t, m, back)
	}
}

func TestAddMinutes(t *testing.T) {
	got, err := TimeString("09:00").AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), got)

	// Переход за полночь не поддерживается
	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("11:00").IsAfter("10:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestLocalize(t *testing.T) {
	// 14:00 UTC at UTC-5 is 09:00 on the same Monday
	instant := time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC)

	weekday, minutes := Localize(instant, -300)
	assert.Equal(t, time.Monday, weekday)
	assert.Equal(t, 9*60, minutes)

	// 03:00 UTC Tuesday at UTC-5 is still Monday 22:00
	instant = time.Date(2026, 9, 8, 3, 0, 0, 0, time.UTC)
	weekday, minutes = Localize(instant, -300)
	assert.Equal(t, time.Monday, weekday)
	assert.Equal(t, 22*60, minutes)
}

func TestInstantAtInvertsLocalize(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	instant := InstantAt(date, 9*60, -300)
	assert.Equal(t, time.Date(2026, 9, 7, 14, 0, 0, 0, time.UTC), instant)

	weekday, minutes := Localize(instant, -300)
	assert.Equal(t, time.Monday, weekday)
	assert.Equal(t, 9*60, minutes)
}
