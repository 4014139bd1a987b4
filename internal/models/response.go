package models

import "time"

type HealthResponse struct {
	Status string `json:"status"`
}

type WizardStateResponse struct {
	StepID         string      `json:"step_id"`
	StepIndex      int         `json:"step_index"`
	StepCount      int         `json:"step_count"`
	CompletedSteps []int       `json:"completed_steps"`
	Submitting     bool        `json:"submitting"`
	Submitted      bool        `json:"submitted"`
	SubmissionID   string      `json:"submission_id,omitempty"`
	Draft          AnswerDraft `json:"draft"`
}

type TransitionResponse struct {
	WizardStateResponse
	Errors []string `json:"errors,omitempty"`
}

type UploadResponse struct {
	FileURL  string `json:"file_url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
}

type SubmissionListResponse struct {
	Submissions []SubmissionSummary `json:"submissions"`
}

type SubmissionSummary struct {
	SubmissionID string    `json:"submission_id"`
	UserName     string    `json:"user_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	PrimaryGoal  string    `json:"primary_goal,omitempty"`
	Programme    string    `json:"programme_chosen,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}
