package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	for _, s := range []string{"00:00", "09:30", "23:59", "13:00:00"} {
		_, ok := IsValidClock(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"24:00", "9:5", "12:60", "noon", ""} {
		_, ok := IsValidClock(s)
		assert.False(t, ok, s)
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "hours", Message: "invalid"},
		{Field: "reason", Message: "required"},
	}
	assert.Equal(t, "hours: invalid; reason: required", errs.Error())
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "hours", Message: "invalid"},
		{Field: "reason", Message: "required"},
	}
	assert.Equal(t, map[string]string{"hours": "invalid", "reason": "required"}, errs.ToMap())
}

type sampleRequest struct {
	Date   string  `json:"date" validate:"required,date"`
	Start  string  `json:"start_time" validate:"required,clock"`
	Hours  float64 `json:"hours" validate:"gt=0"`
	Reason string  `json:"reason" validate:"required,max=10"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		err := Struct(sampleRequest{Date: "2025-10-06", Start: "09:00", Hours: 2, Reason: "ok"})
		assert.NoError(t, err)
	})

	t.Run("reports json field names", func(t *testing.T) {
		err := Struct(sampleRequest{Date: "06/10/2025", Start: "25:00", Hours: 0})
		require.Error(t, err)

		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Equal(t, "date must be a date in YYYY-MM-DD format", m["date"])
		assert.Equal(t, "start_time must be a time in HH:MM format", m["start_time"])
		assert.Equal(t, "hours must be greater than 0", m["hours"])
		assert.Equal(t, "reason is required", m["reason"])
	})
}
