package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0193e6f3-9e1b-7b7a-8a2e-3f4b5c6d7e8f"))
	assert.True(t, IsValidUUID("a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-03-02")
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())

	_, ok = IsValidDate("02-03-2026")
	assert.False(t, ok)

	_, ok = IsValidDate("2026-13-40")
	assert.False(t, ok)
}

func TestIsInSlice(t *testing.T) {
	options := []string{"paid", "banked"}
	assert.True(t, IsInSlice("paid", options))
	assert.False(t, IsInSlice("unpaid", options))
	assert.False(t, IsInSlice("", options))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "hours", Message: "hours cannot be negative"},
	}

	assert.Contains(t, errs.Error(), "date: date is required")
	assert.Contains(t, errs.Error(), "hours: hours cannot be negative")

	m := errs.ToMap()
	assert.Equal(t, "date is required", m["date"])
	assert.Equal(t, "hours cannot be negative", m["hours"])
}
