package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is an array-valued field stored as a JSON-encoded text/jsonb
// column. It is the single encode/decode boundary for all list columns.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	*l = out
	return nil
}

// SubmissionRecord is the normalized row for one completed questionnaire.
// SubmissionID is minted client-side and never changes once written; it is
// the foreign key for measurement and body image rows.
type SubmissionRecord struct {
	ID           int64  `json:"id,omitempty"`
	SubmissionID string `json:"submission_id"`

	UserName    string `json:"user_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Profession  string `json:"profession,omitempty"`

	AgeBracket      string  `json:"age_bracket,omitempty"`
	HeightCm        float64 `json:"height_cm,omitempty"`
	CurrentWeightKg float64 `json:"current_weight_kg,omitempty"`
	TargetWeightKg  float64 `json:"target_weight_kg,omitempty"`

	PrimaryGoal         string `json:"primary_goal,omitempty"`
	IdealPhysique       string `json:"ideal_physique,omitempty"`
	FitnessGoal6Months  string `json:"fitness_goal_6_months,omitempty"`
	FitnessGoalLongTerm string `json:"fitness_goal_long_term,omitempty"`
	TargetBodyAreas     string `json:"target_body_areas,omitempty"`

	MedicalIssuesAllergies string `json:"medical_issues_allergies,omitempty"`
	AlcoholSmokeFrequency  string `json:"alcohol_smoke_frequency,omitempty"`
	RestingHeartRate       int    `json:"resting_heart_rate,omitempty"`
	BodyFatPercentBand     string `json:"body_fat_percent_band,omitempty"`
	WaterIntake            string `json:"water_intake,omitempty"`

	CurrentDietTimetable      string     `json:"current_diet_timetable,omitempty"`
	DietType                  string     `json:"diet_type,omitempty"`
	DietHabits                StringList `json:"diet_habits,omitempty"`
	HighCalorieFavouriteFoods StringList `json:"high_calorie_favourite_foods,omitempty"`
	OtherHighCalorieSweets    string     `json:"other_high_calorie_sweets,omitempty"`
	PreferredIncludedFoods    StringList `json:"preferred_included_foods,omitempty"`
	FoodsDespised             StringList `json:"foods_despised,omitempty"`
	FavouriteFruits           StringList `json:"favourite_fruits,omitempty"`
	FavouriteVegetables       StringList `json:"favourite_vegetables,omitempty"`
	SugarIntakeFrequency      string     `json:"sugar_intake_frequency,omitempty"`
	MealprepTimePreference    string     `json:"mealprep_time_preference,omitempty"`

	CurrentWorkoutPlan        string `json:"current_workout_plan,omitempty"`
	DailySchedule             string `json:"daily_schedule,omitempty"`
	PreferredWorkoutTime      string `json:"preferred_workout_time,omitempty"`
	HasPersonalTrainer        bool   `json:"has_personal_trainer"`
	WorkoutLocation           string `json:"workout_location,omitempty"`
	EquipmentAccessLevel      string `json:"equipment_access_level,omitempty"`
	TrainingFrequencyRecent   string `json:"training_frequency_recent,omitempty"`
	SessionDurationPreference string `json:"session_duration_preference,omitempty"`
	FitnessLevel              int    `json:"fitness_level,omitempty"`
	PushupsMaxRepsBand        string `json:"pushups_max_reps_band,omitempty"`
	PullupsMaxRepsBand        string `json:"pullups_max_reps_band,omitempty"`

	ProgrammeStartDate string `json:"programme_start_date,omitempty"`
	ProgrammeChosen    string `json:"programme_chosen,omitempty"`

	BloodReportURL           string `json:"blood_report_url,omitempty"`
	BodyCompositionReportURL string `json:"body_composition_report_url,omitempty"`
	AspirationImageURL       string `json:"aspiration_image_url,omitempty"`

	IPAddress   string    `json:"ip_address,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	FormVersion string    `json:"form_version,omitempty"`
	SubmittedAt time.Time `json:"submitted_at,omitempty"`
}

// MeasurementRecord holds up to nine optional body measurements in inches,
// at most one row per submission.
type MeasurementRecord struct {
	ID                         int64           `json:"id,omitempty"`
	SubmissionID               string          `json:"submission_id"`
	ForearmIn                  sql.NullFloat64 `json:"forearm_in,omitempty"`
	BicepIn                    sql.NullFloat64 `json:"bicep_in,omitempty"`
	ShoulderIn                 sql.NullFloat64 `json:"shoulder_in,omitempty"`
	ChestIn                    sql.NullFloat64 `json:"chest_in,omitempty"`
	UpperWaistIn               sql.NullFloat64 `json:"upper_waist_in,omitempty"`
	LowerWaistIn               sql.NullFloat64 `json:"lower_waist_in,omitempty"`
	BellyButtonCircumferenceIn sql.NullFloat64 `json:"belly_button_circumference_in,omitempty"`
	ButtocksIn                 sql.NullFloat64 `json:"buttocks_in,omitempty"`
	ThighsIn                   sql.NullFloat64 `json:"thighs_in,omitempty"`
	CreatedAt                  time.Time       `json:"created_at,omitempty"`
}

// BodyImageRecord is one uploaded body photograph, zero or more per
// submission.
type BodyImageRecord struct {
	ID           int64     `json:"id,omitempty"`
	SubmissionID string    `json:"submission_id"`
	FileURL      string    `json:"file_url"`
	ViewType     string    `json:"view_type,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// SubmissionDetail is a submission joined with its child rows for the admin
// detail view and the CSV export.
type SubmissionDetail struct {
	Submission   SubmissionRecord   `json:"submission"`
	Measurements *MeasurementRecord `json:"measurements,omitempty"`
	Images       []BodyImageRecord  `json:"images,omitempty"`
}
