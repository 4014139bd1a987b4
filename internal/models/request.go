package models

// AnswersRequest carries partial section updates merged into the draft. Only
// non-nil sections are applied.
type AnswersRequest struct {
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

// NextRequest optionally carries the same partial update as AnswersRequest so
// a client can save and advance in one call. Confirm must be true to submit
// from the last step.
type NextRequest struct {
	Answers *AnswersRequest `json:"answers,omitempty"`
	Confirm bool            `json:"confirm,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
