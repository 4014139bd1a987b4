package supabase

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"fitness-intake-backend/internal/models"
)

// DatabaseClient is the direct Postgres path to the Supabase-hosted tables.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const submissionColumns = `submission_id, user_name, email, phone_number, profession,
	age_bracket, height_cm, current_weight_kg, target_weight_kg,
	primary_goal, ideal_physique, fitness_goal_6_months, fitness_goal_long_term, target_body_areas,
	medical_issues_allergies, alcohol_smoke_frequency, resting_heart_rate, body_fat_percent_band, water_intake,
	current_diet_timetable, diet_type, diet_habits, high_calorie_favourite_foods, other_high_calorie_sweets,
	preferred_included_foods, foods_despised, favourite_fruits, favourite_vegetables,
	sugar_intake_frequency, mealprep_time_preference,
	current_workout_plan, daily_schedule, preferred_workout_time, has_personal_trainer,
	workout_location, equipment_access_level, training_frequency_recent, session_duration_preference,
	fitness_level, pushups_max_reps_band, pullups_max_reps_band,
	programme_start_date, programme_chosen,
	blood_report_url, body_composition_report_url, aspiration_image_url,
	ip_address, user_agent, form_version, submitted_at`

func (d *DatabaseClient) InsertSubmission(ctx context.Context, rec *models.SubmissionRecord) error {
	query := `
		INSERT INTO form_submissions (` + submissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
			$41, $42, $43, $44, $45, $46, $47, $48, $49, $50)
		RETURNING id`
	err := d.db.QueryRowContext(ctx, query,
		rec.SubmissionID, rec.UserName, rec.Email, rec.PhoneNumber, rec.Profession,
		rec.AgeBracket, rec.HeightCm, rec.CurrentWeightKg, rec.TargetWeightKg,
		rec.PrimaryGoal, rec.IdealPhysique, rec.FitnessGoal6Months, rec.FitnessGoalLongTerm, rec.TargetBodyAreas,
		rec.MedicalIssuesAllergies, rec.AlcoholSmokeFrequency, rec.RestingHeartRate, rec.BodyFatPercentBand, rec.WaterIntake,
		rec.CurrentDietTimetable, rec.DietType, rec.DietHabits, rec.HighCalorieFavouriteFoods, rec.OtherHighCalorieSweets,
		rec.PreferredIncludedFoods, rec.FoodsDespised, rec.FavouriteFruits, rec.FavouriteVegetables,
		rec.SugarIntakeFrequency, rec.MealprepTimePreference,
		rec.CurrentWorkoutPlan, rec.DailySchedule, rec.PreferredWorkoutTime, rec.HasPersonalTrainer,
		rec.WorkoutLocation, rec.EquipmentAccessLevel, rec.TrainingFrequencyRecent, rec.SessionDurationPreference,
		rec.FitnessLevel, rec.PushupsMaxRepsBand, rec.PullupsMaxRepsBand,
		rec.ProgrammeStartDate, rec.ProgrammeChosen,
		rec.BloodReportURL, rec.BodyCompositionReportURL, rec.AspirationImageURL,
		rec.IPAddress, rec.UserAgent, rec.FormVersion, rec.SubmittedAt,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (d *DatabaseClient) InsertMeasurements(ctx context.Context, rec *models.MeasurementRecord) error {
	query := `
		INSERT INTO body_measurements (submission_id, forearm_in, bicep_in, shoulder_in, chest_in,
			upper_waist_in, lower_waist_in, belly_button_circumference_in, buttocks_in, thighs_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := d.db.QueryRowContext(ctx, query,
		rec.SubmissionID, rec.ForearmIn, rec.BicepIn, rec.ShoulderIn, rec.ChestIn,
		rec.UpperWaistIn, rec.LowerWaistIn, rec.BellyButtonCircumferenceIn, rec.ButtocksIn, rec.ThighsIn,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("failed to insert measurements: %w", err)
	}
	return nil
}

func (d *DatabaseClient) InsertBodyImages(ctx context.Context, recs []models.BodyImageRecord) error {
	for i := range recs {
		err := d.db.QueryRowContext(ctx, `
			INSERT INTO full_body_images (submission_id, file_url, view_type)
			VALUES ($1, $2, $3)
			RETURNING id`,
			recs[i].SubmissionID, recs[i].FileURL, recs[i].ViewType,
		).Scan(&recs[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert body image: %w", err)
		}
	}
	return nil
}

// DeleteSubmission removes the primary row; the compensating path of the
// submission saga.
func (d *DatabaseClient) DeleteSubmission(ctx context.Context, submissionID string) error {
	_, err := d.db.ExecContext(ctx, `
		DELETE FROM form_submissions
		WHERE submission_id = $1
	`, submissionID)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ListSubmissions(ctx context.Context) ([]models.SubmissionSummary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT submission_id, user_name, email, primary_goal, programme_chosen, submitted_at
		FROM form_submissions
		ORDER BY submitted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var summaries []models.SubmissionSummary
	for rows.Next() {
		var s models.SubmissionSummary
		if err := rows.Scan(&s.SubmissionID, &s.UserName, &s.Email, &s.PrimaryGoal, &s.Programme, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// GetSubmission returns one submission joined with its measurement and image
// rows.
func (d *DatabaseClient) GetSubmission(ctx context.Context, submissionID string) (*models.SubmissionDetail, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT id, `+submissionColumns+`
		FROM form_submissions
		WHERE submission_id = $1
	`, submissionID)

	rec, err := scanSubmission(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("submission %s not found", submissionID)
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	detail := &models.SubmissionDetail{Submission: *rec}

	measurement, err := d.getMeasurements(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	detail.Measurements = measurement

	images, err := d.getImages(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	detail.Images = images

	return detail, nil
}

// ListSubmissionDetails returns all submissions with children, newest first;
// the export data set.
func (d *DatabaseClient) ListSubmissionDetails(ctx context.Context) ([]models.SubmissionDetail, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, `+submissionColumns+`
		FROM form_submissions
		ORDER BY submitted_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var details []models.SubmissionDetail
	for rows.Next() {
		rec, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		details = append(details, models.SubmissionDetail{Submission: *rec})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range details {
		id := details[i].Submission.SubmissionID
		if details[i].Measurements, err = d.getMeasurements(ctx, id); err != nil {
			return nil, err
		}
		if details[i].Images, err = d.getImages(ctx, id); err != nil {
			return nil, err
		}
	}
	return details, nil
}

func (d *DatabaseClient) getMeasurements(ctx context.Context, submissionID string) (*models.MeasurementRecord, error) {
	var m models.MeasurementRecord
	err := d.db.QueryRowContext(ctx, `
		SELECT id, submission_id, forearm_in, bicep_in, shoulder_in, chest_in,
			upper_waist_in, lower_waist_in, belly_button_circumference_in, buttocks_in, thighs_in, created_at
		FROM body_measurements
		WHERE submission_id = $1
	`, submissionID).Scan(
		&m.ID, &m.SubmissionID, &m.ForearmIn, &m.BicepIn, &m.ShoulderIn, &m.ChestIn,
		&m.UpperWaistIn, &m.LowerWaistIn, &m.BellyButtonCircumferenceIn, &m.ButtocksIn, &m.ThighsIn, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get measurements: %w", err)
	}
	return &m, nil
}

func (d *DatabaseClient) getImages(ctx context.Context, submissionID string) ([]models.BodyImageRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, submission_id, file_url, view_type, created_at
		FROM full_body_images
		WHERE submission_id = $1
		ORDER BY created_at ASC
	`, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get body images: %w", err)
	}
	defer rows.Close()

	var images []models.BodyImageRecord
	for rows.Next() {
		var img models.BodyImageRecord
		if err := rows.Scan(&img.ID, &img.SubmissionID, &img.FileURL, &img.ViewType, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan body image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// UpsertAdminProfile records an admin user in admin_profiles.
func (d *DatabaseClient) UpsertAdminProfile(ctx context.Context, userID, email string) error {
	// The profile row's primary key mirrors the auth user id.
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid auth user id %q: %w", userID, err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO admin_profiles (id, email, role)
		VALUES ($1, $2, 'admin')
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
	`, uid, email)
	if err != nil {
		return fmt.Errorf("failed to upsert admin profile: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row scanner) (*models.SubmissionRecord, error) {
	var rec models.SubmissionRecord
	err := row.Scan(
		&rec.ID,
		&rec.SubmissionID, &rec.UserName, &rec.Email, &rec.PhoneNumber, &rec.Profession,
		&rec.AgeBracket, &rec.HeightCm, &rec.CurrentWeightKg, &rec.TargetWeightKg,
		&rec.PrimaryGoal, &rec.IdealPhysique, &rec.FitnessGoal6Months, &rec.FitnessGoalLongTerm, &rec.TargetBodyAreas,
		&rec.MedicalIssuesAllergies, &rec.AlcoholSmokeFrequency, &rec.RestingHeartRate, &rec.BodyFatPercentBand, &rec.WaterIntake,
		&rec.CurrentDietTimetable, &rec.DietType, &rec.DietHabits, &rec.HighCalorieFavouriteFoods, &rec.OtherHighCalorieSweets,
		&rec.PreferredIncludedFoods, &rec.FoodsDespised, &rec.FavouriteFruits, &rec.FavouriteVegetables,
		&rec.SugarIntakeFrequency, &rec.MealprepTimePreference,
		&rec.CurrentWorkoutPlan, &rec.DailySchedule, &rec.PreferredWorkoutTime, &rec.HasPersonalTrainer,
		&rec.WorkoutLocation, &rec.EquipmentAccessLevel, &rec.TrainingFrequencyRecent, &rec.SessionDurationPreference,
		&rec.FitnessLevel, &rec.PushupsMaxRepsBand, &rec.PullupsMaxRepsBand,
		&rec.ProgrammeStartDate, &rec.ProgrammeChosen,
		&rec.BloodReportURL, &rec.BodyCompositionReportURL, &rec.AspirationImageURL,
		&rec.IPAddress, &rec.UserAgent, &rec.FormVersion, &rec.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
