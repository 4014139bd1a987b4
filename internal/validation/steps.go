package validation

import "fitness-intake-backend/internal/models"

// StepValidator checks the sections relevant to one wizard step. It never
// inspects the rest of the draft. An empty result means the step may advance.
type StepValidator func(draft *models.AnswerDraft) []string

func collect(errs ...string) []string {
	var out []string
	for _, e := range errs {
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// ContactInfo gates the introduction step: name, email, phone, profession.
func ContactInfo(draft *models.AnswerDraft) []string {
	p := draft.Profile
	if p == nil {
		p = &models.ProfileSection{}
	}
	return collect(
		Required(p.UserName, "Full Name"),
		Email(p.Email),
		PhoneNumber(p.PhoneNumber),
		Required(p.Profession, "Profession"),
	)
}

// PersonalDetails gates demographics: age bracket, height, both weights.
func PersonalDetails(draft *models.AnswerDraft) []string {
	p := draft.Personal
	if p == nil {
		p = &models.PersonalSection{}
	}
	return collect(
		AgeBracket(p.AgeBracket),
		Height(p.HeightCm),
		Weight(p.CurrentWeightKg),
		Weight(p.TargetWeightKg),
	)
}

// PrimaryGoals gates the goals step: the primary goal selection is required.
func PrimaryGoals(draft *models.AnswerDraft) []string {
	g := draft.Goals
	if g == nil {
		g = &models.GoalsSection{}
	}
	return collect(
		PrimaryGoal(g.PrimaryGoal),
	)
}
