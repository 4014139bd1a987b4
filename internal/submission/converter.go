package submission

import (
	"context"
	"database/sql"
	"time"

	"fitness-intake-backend/internal/models"
)

const formVersion = "v1.0"

// RequestMeta is request-scoped metadata attached to the submission row.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type metaContextKey struct{}

// WithMeta attaches request metadata to the context the saga runs under.
func WithMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaContextKey{}, meta)
}

// MetaFromContext returns attached request metadata, zero when absent.
func MetaFromContext(ctx context.Context) RequestMeta {
	if meta, ok := ctx.Value(metaContextKey{}).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{}
}

// buildSubmission flattens the nested draft into the normalized submission
// row. Nil sections contribute zero values.
func buildSubmission(draft models.AnswerDraft, submissionID string, meta RequestMeta) models.SubmissionRecord {
	rec := models.SubmissionRecord{
		SubmissionID: submissionID,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		FormVersion:  formVersion,
		SubmittedAt:  time.Now().UTC(),
	}

	if p := draft.Profile; p != nil {
		rec.UserName = p.UserName
		rec.Email = p.Email
		rec.PhoneNumber = p.PhoneNumber
		rec.Profession = p.Profession
	}
	if p := draft.Personal; p != nil {
		rec.AgeBracket = p.AgeBracket
		rec.HeightCm = p.HeightCm
		rec.CurrentWeightKg = p.CurrentWeightKg
		rec.TargetWeightKg = p.TargetWeightKg
	}
	if g := draft.Goals; g != nil {
		rec.PrimaryGoal = g.PrimaryGoal
		rec.IdealPhysique = g.IdealPhysique
		rec.FitnessGoal6Months = g.FitnessGoal6Months
		rec.FitnessGoalLongTerm = g.FitnessGoalLongTerm
		rec.TargetBodyAreas = g.TargetBodyAreas
	}
	if h := draft.Health; h != nil {
		rec.MedicalIssuesAllergies = h.MedicalIssuesAllergies
		rec.AlcoholSmokeFrequency = h.AlcoholSmokeFrequency
		rec.RestingHeartRate = h.RestingHeartRate
		rec.BodyFatPercentBand = h.BodyFatPercentBand
		rec.WaterIntake = h.WaterIntake
	}
	if d := draft.Diet; d != nil {
		rec.CurrentDietTimetable = d.CurrentDietTimetable
		rec.DietType = d.DietType
		rec.DietHabits = models.StringList(d.DietHabits)
		rec.HighCalorieFavouriteFoods = models.StringList(d.HighCalorieFavouriteFoods)
		rec.OtherHighCalorieSweets = d.OtherHighCalorieSweets
		rec.PreferredIncludedFoods = models.StringList(d.PreferredIncludedFoods)
		rec.FoodsDespised = models.StringList(d.FoodsDespised)
		rec.FavouriteFruits = models.StringList(d.FavouriteFruits)
		rec.FavouriteVegetables = models.StringList(d.FavouriteVegetables)
		rec.SugarIntakeFrequency = d.SugarIntakeFrequency
		rec.MealprepTimePreference = d.MealprepTimePreference
	}
	if w := draft.Workout; w != nil {
		rec.CurrentWorkoutPlan = w.CurrentWorkoutPlan
		rec.DailySchedule = w.DailySchedule
		rec.PreferredWorkoutTime = w.PreferredWorkoutTime
		rec.HasPersonalTrainer = w.HasPersonalTrainer
		rec.WorkoutLocation = w.WorkoutLocation
		rec.EquipmentAccessLevel = w.EquipmentAccessLevel
		rec.TrainingFrequencyRecent = w.TrainingFrequencyRecent
		rec.SessionDurationPreference = w.SessionDurationPreference
		rec.FitnessLevel = w.FitnessLevel
		rec.PushupsMaxRepsBand = w.PushupsMaxRepsBand
		rec.PullupsMaxRepsBand = w.PullupsMaxRepsBand
	}
	if f := draft.Files; f != nil {
		rec.BloodReportURL = f.BloodReportURL
		rec.BodyCompositionReportURL = f.BodyCompositionReportURL
		rec.AspirationImageURL = f.AspirationImageURL
	}
	if p := draft.Program; p != nil {
		rec.ProgrammeStartDate = p.ProgrammeStartDate
		rec.ProgrammeChosen = p.ProgrammeChosen
	}

	return rec
}

// buildMeasurements returns nil when the user supplied no measurement at all;
// in that case no row is written.
func buildMeasurements(draft models.AnswerDraft, submissionID string) *models.MeasurementRecord {
	m := draft.Measurements
	if m.Empty() {
		return nil
	}
	return &models.MeasurementRecord{
		SubmissionID:               submissionID,
		ForearmIn:                  nullFloat(m.ForearmIn),
		BicepIn:                    nullFloat(m.BicepIn),
		ShoulderIn:                 nullFloat(m.ShoulderIn),
		ChestIn:                    nullFloat(m.ChestIn),
		UpperWaistIn:               nullFloat(m.UpperWaistIn),
		LowerWaistIn:               nullFloat(m.LowerWaistIn),
		BellyButtonCircumferenceIn: nullFloat(m.BellyButtonCircumferenceIn),
		ButtocksIn:                 nullFloat(m.ButtocksIn),
		ThighsIn:                   nullFloat(m.ThighsIn),
	}
}

// buildImages keeps only images with a resolved storage URL.
func buildImages(draft models.AnswerDraft, submissionID string) []models.BodyImageRecord {
	var out []models.BodyImageRecord
	for _, img := range draft.Images {
		if img.FileURL == "" {
			continue
		}
		view := img.ViewType
		if view == "" {
			view = "other"
		}
		out = append(out, models.BodyImageRecord{
			SubmissionID: submissionID,
			FileURL:      img.FileURL,
			ViewType:     view,
		})
	}
	return out
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
