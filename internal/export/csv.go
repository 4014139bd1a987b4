package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fitness-intake-backend/internal/models"
)

// CSV flattening of submissions for spreadsheet download. The column order is
// fixed and explicit so identical input always produces byte-identical
// output; nothing is derived from map iteration.

const (
	// bom keeps non-ASCII content intact when the file is opened in common
	// spreadsheet tools.
	bom           = "\ufeff"
	listSeparator = "; "
)

var columns = []string{
	"submission_id",
	"submitted_at",
	"user_name",
	"email",
	"phone_number",
	"profession",
	"age_bracket",
	"height_cm",
	"current_weight_kg",
	"target_weight_kg",
	"primary_goal",
	"ideal_physique",
	"fitness_goal_6_months",
	"fitness_goal_long_term",
	"target_body_areas",
	"medical_issues_allergies",
	"alcohol_smoke_frequency",
	"resting_heart_rate",
	"body_fat_percent_band",
	"water_intake",
	"current_diet_timetable",
	"diet_type",
	"diet_habits",
	"high_calorie_favourite_foods",
	"other_high_calorie_sweets",
	"preferred_included_foods",
	"foods_despised",
	"favourite_fruits",
	"favourite_vegetables",
	"sugar_intake_frequency",
	"mealprep_time_preference",
	"current_workout_plan",
	"daily_schedule",
	"preferred_workout_time",
	"has_personal_trainer",
	"workout_location",
	"equipment_access_level",
	"training_frequency_recent",
	"session_duration_preference",
	"fitness_level",
	"pushups_max_reps_band",
	"pullups_max_reps_band",
	"programme_start_date",
	"programme_chosen",
	"blood_report_url",
	"body_composition_report_url",
	"aspiration_image_url",
	"ip_address",
	"user_agent",
	"form_version",
	"forearm_in",
	"bicep_in",
	"shoulder_in",
	"chest_in",
	"upper_waist_in",
	"lower_waist_in",
	"belly_button_circumference_in",
	"buttocks_in",
	"thighs_in",
	"image_front_url",
	"image_rear_url",
	"image_side_left_url",
	"image_side_right_url",
	"image_other_urls",
}

// Columns returns the fixed header order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// FormatCSV flattens submissions joined with their measurement and image rows
// into delimited text. Pure with respect to its input: identical input yields
// identical bytes.
func FormatCSV(details []models.SubmissionDetail) string {
	var b strings.Builder
	b.WriteString(bom)
	b.WriteString(strings.Join(columns, ","))
	b.WriteString("\n")

	for _, d := range details {
		b.WriteString(strings.Join(rowCells(d), ","))
		b.WriteString("\n")
	}
	return b.String()
}

func rowCells(d models.SubmissionDetail) []string {
	s := d.Submission
	cells := []string{
		cell(s.SubmissionID),
		cell(formatTime(s.SubmittedAt)),
		cell(s.UserName),
		cell(s.Email),
		cell(s.PhoneNumber),
		cell(s.Profession),
		cell(s.AgeBracket),
		cell(formatFloat(s.HeightCm)),
		cell(formatFloat(s.CurrentWeightKg)),
		cell(formatFloat(s.TargetWeightKg)),
		cell(s.PrimaryGoal),
		cell(s.IdealPhysique),
		cell(s.FitnessGoal6Months),
		cell(s.FitnessGoalLongTerm),
		cell(s.TargetBodyAreas),
		cell(s.MedicalIssuesAllergies),
		cell(s.AlcoholSmokeFrequency),
		cell(formatInt(s.RestingHeartRate)),
		cell(s.BodyFatPercentBand),
		cell(s.WaterIntake),
		cell(s.CurrentDietTimetable),
		cell(s.DietType),
		listCell(s.DietHabits),
		listCell(s.HighCalorieFavouriteFoods),
		cell(s.OtherHighCalorieSweets),
		listCell(s.PreferredIncludedFoods),
		listCell(s.FoodsDespised),
		listCell(s.FavouriteFruits),
		listCell(s.FavouriteVegetables),
		cell(s.SugarIntakeFrequency),
		cell(s.MealprepTimePreference),
		cell(s.CurrentWorkoutPlan),
		cell(s.DailySchedule),
		cell(s.PreferredWorkoutTime),
		cell(formatBool(s.HasPersonalTrainer)),
		cell(s.WorkoutLocation),
		cell(s.EquipmentAccessLevel),
		cell(s.TrainingFrequencyRecent),
		cell(s.SessionDurationPreference),
		cell(formatInt(s.FitnessLevel)),
		cell(s.PushupsMaxRepsBand),
		cell(s.PullupsMaxRepsBand),
		cell(s.ProgrammeStartDate),
		cell(s.ProgrammeChosen),
		cell(s.BloodReportURL),
		cell(s.BodyCompositionReportURL),
		cell(s.AspirationImageURL),
		cell(s.IPAddress),
		cell(s.UserAgent),
		cell(s.FormVersion),
	}

	m := d.Measurements
	measurementCells := make([]string, 9)
	if m != nil {
		vals := []struct {
			valid bool
			f     float64
		}{
			{m.ForearmIn.Valid, m.ForearmIn.Float64},
			{m.BicepIn.Valid, m.BicepIn.Float64},
			{m.ShoulderIn.Valid, m.ShoulderIn.Float64},
			{m.ChestIn.Valid, m.ChestIn.Float64},
			{m.UpperWaistIn.Valid, m.UpperWaistIn.Float64},
			{m.LowerWaistIn.Valid, m.LowerWaistIn.Float64},
			{m.BellyButtonCircumferenceIn.Valid, m.BellyButtonCircumferenceIn.Float64},
			{m.ButtocksIn.Valid, m.ButtocksIn.Float64},
			{m.ThighsIn.Valid, m.ThighsIn.Float64},
		}
		for i, v := range vals {
			if v.valid {
				measurementCells[i] = cell(strconv.FormatFloat(v.f, 'f', -1, 64))
			}
		}
	}
	// A measurement-less submission exports empty strings, never a null
	// literal.
	cells = append(cells, measurementCells...)

	cells = append(cells, imageCells(d.Images)...)
	return cells
}

// imageCells maps one URL per canonical view; extra "other" images collapse
// into one joined cell.
func imageCells(images []models.BodyImageRecord) []string {
	byView := map[string]string{}
	var other []string
	for _, img := range images {
		switch img.ViewType {
		case "front", "rear", "side_left", "side_right":
			if byView[img.ViewType] == "" {
				byView[img.ViewType] = img.FileURL
			}
		default:
			other = append(other, img.FileURL)
		}
	}
	return []string{
		cell(byView["front"]),
		cell(byView["rear"]),
		cell(byView["side_left"]),
		cell(byView["side_right"]),
		cell(strings.Join(other, listSeparator)),
	}
}

// listCell joins array values with the fixed separator inside a quoted cell
// so a standard CSV reader round-trips the joined list.
func listCell(values models.StringList) string {
	if len(values) == 0 {
		return ""
	}
	return quote(strings.Join(values, listSeparator))
}

// cell quotes only when the value contains the delimiter, a quote, or a
// newline; internal quotes are doubled.
func cell(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return quote(value)
	}
	return value
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%d", v)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
