package export_test

import (
	"database/sql"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-intake-backend/internal/export"
	"fitness-intake-backend/internal/models"
)

func sampleDetail() models.SubmissionDetail {
	return models.SubmissionDetail{
		Submission: models.SubmissionRecord{
			SubmissionID:       "FIT-1700000000-7",
			SubmittedAt:        time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
			UserName:           "Test User",
			Email:              "test@example.com",
			PhoneNumber:        "5551234567",
			Profession:         "Engineer",
			AgeBracket:         "30_39",
			HeightCm:           180,
			CurrentWeightKg:    90.5,
			TargetWeightKg:     80,
			PrimaryGoal:        "lose_weight",
			DietHabits:         models.StringList{"eat_fast", "late_night_snacks"},
			FavouriteFruits:    models.StringList{"mango", "banana"},
			HasPersonalTrainer: true,
			FitnessLevel:       7,
			FormVersion:        "v1.0",
		},
		Measurements: &models.MeasurementRecord{
			SubmissionID: "FIT-1700000000-7",
			ForearmIn:    sql.NullFloat64{Float64: 12.5, Valid: true},
			ChestIn:      sql.NullFloat64{Float64: 42, Valid: true},
		},
		Images: []models.BodyImageRecord{
			{FileURL: "https://files.example.com/front.jpg", ViewType: "front"},
			{FileURL: "https://files.example.com/misc1.jpg", ViewType: "other"},
			{FileURL: "https://files.example.com/misc2.jpg", ViewType: "other"},
		},
	}
}

func parseCSV(t *testing.T, raw string) [][]string {
	t.Helper()
	raw = strings.TrimPrefix(raw, "\ufeff")
	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	return records
}

func columnIndex(t *testing.T, name string) int {
	t.Helper()
	for i, col := range export.Columns() {
		if col == name {
			return i
		}
	}
	t.Fatalf("column %q not found", name)
	return -1
}

func TestFormatCSV_HeaderAndBOM(t *testing.T) {
	out := export.FormatCSV(nil)
	assert.True(t, strings.HasPrefix(out, "\ufeff"))

	records := parseCSV(t, out)
	require.Len(t, records, 1)
	assert.Equal(t, export.Columns(), records[0])
}

func TestFormatCSV_RoundTripsThroughStandardReader(t *testing.T) {
	out := export.FormatCSV([]models.SubmissionDetail{sampleDetail()})
	records := parseCSV(t, out)
	require.Len(t, records, 2)

	row := records[1]
	require.Len(t, row, len(export.Columns()))

	assert.Equal(t, "FIT-1700000000-7", row[columnIndex(t, "submission_id")])
	assert.Equal(t, "2026-03-14T09:30:00Z", row[columnIndex(t, "submitted_at")])
	assert.Equal(t, "90.5", row[columnIndex(t, "current_weight_kg")])
	assert.Equal(t, "Yes", row[columnIndex(t, "has_personal_trainer")])
	assert.Equal(t, "7", row[columnIndex(t, "fitness_level")])

	// List columns join with "; " inside a single cell.
	assert.Equal(t, "eat_fast; late_night_snacks", row[columnIndex(t, "diet_habits")])
	assert.Equal(t, "mango; banana", row[columnIndex(t, "favourite_fruits")])

	assert.Equal(t, "12.5", row[columnIndex(t, "forearm_in")])
	assert.Equal(t, "42", row[columnIndex(t, "chest_in")])
	assert.Equal(t, "", row[columnIndex(t, "bicep_in")])

	assert.Equal(t, "https://files.example.com/front.jpg", row[columnIndex(t, "image_front_url")])
	assert.Equal(t, "", row[columnIndex(t, "image_rear_url")])
	assert.Equal(t,
		"https://files.example.com/misc1.jpg; https://files.example.com/misc2.jpg",
		row[columnIndex(t, "image_other_urls")])
}

func TestFormatCSV_EscapesSpecialCharacters(t *testing.T) {
	detail := sampleDetail()
	detail.Submission.UserName = `Tester "The Machine" O'Neil`
	detail.Submission.Profession = "Engineer, self-employed"
	detail.Submission.DailySchedule = "morning run\nevening lift"

	records := parseCSV(t, export.FormatCSV([]models.SubmissionDetail{detail}))
	row := records[1]

	assert.Equal(t, `Tester "The Machine" O'Neil`, row[columnIndex(t, "user_name")])
	assert.Equal(t, "Engineer, self-employed", row[columnIndex(t, "profession")])
	assert.Equal(t, "morning run\nevening lift", row[columnIndex(t, "daily_schedule")])
}

func TestFormatCSV_MissingMeasurementsRowStaysAligned(t *testing.T) {
	detail := sampleDetail()
	detail.Measurements = nil
	detail.Images = nil

	records := parseCSV(t, export.FormatCSV([]models.SubmissionDetail{detail}))
	row := records[1]
	require.Len(t, row, len(export.Columns()))

	// Absent child rows export as empty cells, never "null".
	assert.Equal(t, "", row[columnIndex(t, "forearm_in")])
	assert.Equal(t, "", row[columnIndex(t, "thighs_in")])
	assert.Equal(t, "", row[columnIndex(t, "image_front_url")])
	assert.Equal(t, "", row[columnIndex(t, "image_other_urls")])
}

func TestFormatCSV_Deterministic(t *testing.T) {
	details := []models.SubmissionDetail{sampleDetail(), sampleDetail()}
	first := export.FormatCSV(details)
	second := export.FormatCSV(details)
	assert.Equal(t, first, second)
}
