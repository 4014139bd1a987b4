package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/validation"
)

func TestEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"valid", "user@example.com", true},
		{"valid with subdomain", "user@mail.example.co.uk", true},
		{"valid with plus", "user+tag@example.com", true},
		{"empty", "", false},
		{"missing at", "userexample.com", false},
		{"missing domain dot", "user@example", false},
		{"whitespace", "user name@example.com", false},
		{"double at", "user@@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validation.Email(tt.email)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestPhoneNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{"ten digits", "5551234567", true},
		{"formatted", "+1 (555) 123-4567", true},
		{"fifteen digits", "123456789012345", true},
		{"nine digits", "123456789", false},
		{"sixteen digits", "1234567890123456", false},
		{"empty", "", false},
		{"letters only", "call me", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validation.PhoneNumber(tt.phone)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestHeightBounds(t *testing.T) {
	assert.Empty(t, validation.Height(50))
	assert.Empty(t, validation.Height(180))
	assert.Empty(t, validation.Height(300))
	assert.NotEmpty(t, validation.Height(49.9))
	assert.NotEmpty(t, validation.Height(300.1))
	assert.NotEmpty(t, validation.Height(0))
}

func TestWeightBounds(t *testing.T) {
	assert.Empty(t, validation.Weight(20))
	assert.Empty(t, validation.Weight(85.5))
	assert.Empty(t, validation.Weight(500))
	assert.NotEmpty(t, validation.Weight(19.9))
	assert.NotEmpty(t, validation.Weight(500.5))
	assert.NotEmpty(t, validation.Weight(0))
}

func TestAgeBracket(t *testing.T) {
	for _, b := range []string{"18_29", "30_39", "40_49", "50_plus"} {
		assert.Empty(t, validation.AgeBracket(b), b)
	}
	assert.NotEmpty(t, validation.AgeBracket(""))
	assert.NotEmpty(t, validation.AgeBracket("17"))
	assert.NotEmpty(t, validation.AgeBracket("60_plus"))
}

func TestFile(t *testing.T) {
	imageOpts := validation.FileOptions{MaxSizeMB: 5, AllowedTypes: []string{"image/*"}}
	reportOpts := validation.FileOptions{MaxSizeMB: 10, AllowedTypes: []string{"pdf", "image/*"}}

	tests := []struct {
		name        string
		filename    string
		size        int64
		contentType string
		opts        validation.FileOptions
		valid       bool
	}{
		{"jpeg under limit", "a.jpg", 1 << 20, "image/jpeg", imageOpts, true},
		{"png", "a.png", 1 << 20, "image/png", imageOpts, true},
		{"image too large", "a.jpg", 6 << 20, "image/jpeg", imageOpts, false},
		{"pdf rejected as image", "a.pdf", 1 << 20, "application/pdf", imageOpts, false},
		{"pdf accepted as report", "a.pdf", 9 << 20, "application/pdf", reportOpts, true},
		{"report too large", "a.pdf", 11 << 20, "application/pdf", reportOpts, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validation.File(tt.filename, tt.size, tt.contentType, tt.opts)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestContactInfoStep(t *testing.T) {
	errs := validation.ContactInfo(&models.AnswerDraft{})
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, "Full Name is required")

	errs = validation.ContactInfo(&models.AnswerDraft{
		Profile: &models.ProfileSection{
			UserName:    "Test User",
			Email:       "bad-email",
			PhoneNumber: "+1 555 123 4567",
			Profession:  "Engineer",
		},
	})
	assert.Equal(t, []string{"Please enter a valid email address"}, errs)
}

func TestPersonalDetailsStep(t *testing.T) {
	errs := validation.PersonalDetails(&models.AnswerDraft{
		Personal: &models.PersonalSection{
			AgeBracket:      "30_39",
			HeightCm:        180,
			CurrentWeightKg: 90,
			TargetWeightKg:  80,
		},
	})
	assert.Empty(t, errs)

	errs = validation.PersonalDetails(&models.AnswerDraft{
		Personal: &models.PersonalSection{
			AgeBracket:      "30_39",
			HeightCm:        10,
			CurrentWeightKg: 90,
			TargetWeightKg:  80,
		},
	})
	assert.Len(t, errs, 1)
}

func TestPrimaryGoalsStep(t *testing.T) {
	assert.NotEmpty(t, validation.PrimaryGoals(&models.AnswerDraft{}))
	assert.Empty(t, validation.PrimaryGoals(&models.AnswerDraft{
		Goals: &models.GoalsSection{PrimaryGoal: "gain_muscle"},
	}))
}
