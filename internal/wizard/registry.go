package wizard

import "fitness-intake-backend/internal/validation"

// Step is one entry in the canonical questionnaire order. Validate is nil for
// steps without hard requirements.
type Step struct {
	ID       string
	Title    string
	Validate validation.StepValidator
}

// Steps returns the canonical ordered step list. Contact info, personal
// details and the primary goal are the gated steps; everything else advances
// freely.
func Steps() []Step {
	return []Step{
		{ID: "introduction", Title: "Introduction", Validate: validation.ContactInfo},
		{ID: "personal_details", Title: "Personal Details", Validate: validation.PersonalDetails},
		{ID: "primary_goals", Title: "Primary Goals", Validate: validation.PrimaryGoals},
		{ID: "health_lifestyle", Title: "Health & Lifestyle"},
		{ID: "dietary_habits", Title: "Dietary Habits"},
		{ID: "food_preferences", Title: "Food Preferences"},
		{ID: "workout_experience", Title: "Workout Experience"},
		{ID: "fitness_level", Title: "Fitness Level"},
		{ID: "program_uploads", Title: "Program & Uploads"},
		{ID: "measurements", Title: "Measurements"},
		{ID: "images", Title: "Progress Photos"},
	}
}
