package models

// AnswerDraft is the in-progress questionnaire state. Every section is
// optional until submission-time validation runs; nil means the user has not
// reached that step yet.
type AnswerDraft struct {
	Profile      *ProfileSection      `json:"profile,omitempty"`
	Personal     *PersonalSection     `json:"personal,omitempty"`
	Goals        *GoalsSection        `json:"goals,omitempty"`
	Health       *HealthSection       `json:"health,omitempty"`
	Diet         *DietSection         `json:"diet,omitempty"`
	Workout      *WorkoutSection      `json:"workout,omitempty"`
	Files        *FilesSection        `json:"files,omitempty"`
	Measurements *MeasurementsSection `json:"measurements,omitempty"`
	Images       []BodyImageDraft     `json:"images,omitempty"`
	Program      *ProgramSection      `json:"program,omitempty"`
}

type ProfileSection struct {
	UserName    string `json:"user_name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Profession  string `json:"profession,omitempty"`
}

type PersonalSection struct {
	AgeBracket      string  `json:"age_bracket,omitempty"`
	HeightCm        float64 `json:"height_cm,omitempty"`
	CurrentWeightKg float64 `json:"current_weight_kg,omitempty"`
	TargetWeightKg  float64 `json:"target_weight_kg,omitempty"`
}

type GoalsSection struct {
	PrimaryGoal         string `json:"primary_goal,omitempty"`
	IdealPhysique       string `json:"ideal_physique,omitempty"`
	FitnessGoal6Months  string `json:"fitness_goal_6_months,omitempty"`
	FitnessGoalLongTerm string `json:"fitness_goal_long_term,omitempty"`
	TargetBodyAreas     string `json:"target_body_areas,omitempty"`
}

type HealthSection struct {
	MedicalIssuesAllergies string `json:"medical_issues_allergies,omitempty"`
	AlcoholSmokeFrequency  string `json:"alcohol_smoke_frequency,omitempty"`
	RestingHeartRate       int    `json:"resting_heart_rate,omitempty"`
	BodyFatPercentBand     string `json:"body_fat_percent_band,omitempty"`
	WaterIntake            string `json:"water_intake,omitempty"`
}

type DietSection struct {
	CurrentDietTimetable      string   `json:"current_diet_timetable,omitempty"`
	DietType                  string   `json:"diet_type,omitempty"`
	DietHabits                []string `json:"diet_habits,omitempty"`
	HighCalorieFavouriteFoods []string `json:"high_calorie_favourite_foods,omitempty"`
	OtherHighCalorieSweets    string   `json:"other_high_calorie_sweets,omitempty"`
	PreferredIncludedFoods    []string `json:"preferred_included_foods,omitempty"`
	FoodsDespised             []string `json:"foods_despised,omitempty"`
	FavouriteFruits           []string `json:"favourite_fruits,omitempty"`
	FavouriteVegetables       []string `json:"favourite_vegetables,omitempty"`
	SugarIntakeFrequency      string   `json:"sugar_intake_frequency,omitempty"`
	MealprepTimePreference    string   `json:"mealprep_time_preference,omitempty"`
}

type WorkoutSection struct {
	CurrentWorkoutPlan        string `json:"current_workout_plan,omitempty"`
	DailySchedule             string `json:"daily_schedule,omitempty"`
	PreferredWorkoutTime      string `json:"preferred_workout_time,omitempty"`
	HasPersonalTrainer        bool   `json:"has_personal_trainer,omitempty"`
	WorkoutLocation           string `json:"workout_location,omitempty"`
	EquipmentAccessLevel      string `json:"equipment_access_level,omitempty"`
	TrainingFrequencyRecent   string `json:"training_frequency_recent,omitempty"`
	SessionDurationPreference string `json:"session_duration_preference,omitempty"`
	FitnessLevel              int    `json:"fitness_level,omitempty"`
	PushupsMaxRepsBand        string `json:"pushups_max_reps_band,omitempty"`
	PullupsMaxRepsBand        string `json:"pullups_max_reps_band,omitempty"`
}

// FilesSection holds references to files already pushed to object storage,
// plus raw bytes still pending upload at submission time.
type FilesSection struct {
	BloodReportURL            string `json:"blood_report_url,omitempty"`
	BodyCompositionReportURL  string `json:"body_composition_report_url,omitempty"`
	AspirationImageURL        string `json:"aspiration_image_url,omitempty"`
	PendingBloodReport        []byte `json:"pending_blood_report,omitempty"`
	PendingBodyComposition    []byte `json:"pending_body_composition,omitempty"`
	PendingAspirationImage    []byte `json:"pending_aspiration_image,omitempty"`
	PendingBloodReportName    string `json:"pending_blood_report_name,omitempty"`
	PendingBodyCompName       string `json:"pending_body_comp_name,omitempty"`
	PendingAspirationImgName  string `json:"pending_aspiration_img_name,omitempty"`
}

type MeasurementsSection struct {
	ForearmIn                  *float64 `json:"forearm_in,omitempty"`
	BicepIn                    *float64 `json:"bicep_in,omitempty"`
	ShoulderIn                 *float64 `json:"shoulder_in,omitempty"`
	ChestIn                    *float64 `json:"chest_in,omitempty"`
	UpperWaistIn               *float64 `json:"upper_waist_in,omitempty"`
	LowerWaistIn               *float64 `json:"lower_waist_in,omitempty"`
	BellyButtonCircumferenceIn *float64 `json:"belly_button_circumference_in,omitempty"`
	ButtocksIn                 *float64 `json:"buttocks_in,omitempty"`
	ThighsIn                   *float64 `json:"thighs_in,omitempty"`
}

// Empty reports whether no measurement field was supplied.
func (m *MeasurementsSection) Empty() bool {
	if m == nil {
		return true
	}
	for _, v := range []*float64{
		m.ForearmIn, m.BicepIn, m.ShoulderIn, m.ChestIn, m.UpperWaistIn,
		m.LowerWaistIn, m.BellyButtonCircumferenceIn, m.ButtocksIn, m.ThighsIn,
	} {
		if v != nil {
			return false
		}
	}
	return true
}

type BodyImageDraft struct {
	FileURL  string `json:"file_url,omitempty"`
	ViewType string `json:"view_type,omitempty"`
	// Pending holds bytes not yet pushed to storage.
	Pending     []byte `json:"pending,omitempty"`
	PendingName string `json:"pending_name,omitempty"`
}

type ProgramSection struct {
	ProgrammeStartDate string `json:"programme_start_date,omitempty"`
	ProgrammeChosen    string `json:"programme_chosen,omitempty"`
}
