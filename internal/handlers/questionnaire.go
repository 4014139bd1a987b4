package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"fitness-intake-backend/internal/draft"
	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/submission"
	"fitness-intake-backend/internal/wizard"
)

// QuestionnaireHandler drives the multi-step wizard for each client token.
// Controllers are created lazily and resume from the persisted draft.
type QuestionnaireHandler struct {
	store     *draft.Store
	flusher   *draft.Flusher
	submitter wizard.Submitter
	steps     []wizard.Step

	mu          sync.Mutex
	controllers map[string]*wizard.Controller
}

func NewQuestionnaireHandler(store *draft.Store, flusher *draft.Flusher, submitter wizard.Submitter) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		store:       store,
		flusher:     flusher,
		submitter:   submitter,
		steps:       wizard.Steps(),
		controllers: make(map[string]*wizard.Controller),
	}
}

func (h *QuestionnaireHandler) controller(clientID string) *wizard.Controller {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ctrl, ok := h.controllers[clientID]; ok {
		return ctrl
	}
	ctrl := wizard.NewController(clientID, h.steps, h.store, h.submitter)
	h.controllers[clientID] = ctrl
	return ctrl
}

// GetState returns the wizard state for a client, resuming any persisted
// draft.
func (h *QuestionnaireHandler) GetState(c *gin.Context) {
	clientID := c.Param("client_id")
	ctrl := h.controller(clientID)
	c.JSON(http.StatusOK, h.stateResponse(clientID, ctrl.State()))
}

// SaveAnswers merges partial section updates into the draft and persists it.
func (h *QuestionnaireHandler) SaveAnswers(c *gin.Context) {
	clientID := c.Param("client_id")

	var req models.AnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctrl := h.controller(clientID)
	state, err := ctrl.UpdateDraft(func(d *models.AnswerDraft) {
		applyAnswers(d, &req)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save draft",
			Message: err.Error(),
		})
		return
	}
	h.flusher.Mark(clientID, state.Draft, completedList(state))

	c.JSON(http.StatusOK, h.stateResponse(clientID, state))
}

// Next validates the current step and advances; on the last step a confirmed
// pass runs the submission transaction.
func (h *QuestionnaireHandler) Next(c *gin.Context) {
	clientID := c.Param("client_id")

	var req models.NextRequest
	// Body is optional: an empty Next just validates and advances.
	_ = c.ShouldBindJSON(&req)

	ctrl := h.controller(clientID)
	if req.Answers != nil {
		if _, err := ctrl.UpdateDraft(func(d *models.AnswerDraft) {
			applyAnswers(d, req.Answers)
		}); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to save draft",
				Message: err.Error(),
			})
			return
		}
	}

	ctx := submission.WithMeta(c.Request.Context(), submission.RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})

	state, validationErrs, err := ctrl.Next(ctx, req.Confirm)
	resp := models.TransitionResponse{
		WizardStateResponse: h.stateResponse(clientID, state),
		Errors:              validationErrs,
	}

	switch {
	case errors.Is(err, wizard.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "confirmation required",
			Message: "set confirm to true to submit the questionnaire",
		})
		return
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error: "submission already in flight",
		})
		return
	case err != nil:
		// Failed submission: the user stays on the last step with the draft
		// intact.
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "submission failed",
			Message: err.Error(),
		})
		return
	}

	if len(validationErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, resp)
		return
	}

	// Keep the flush queue in step with what the controller just persisted:
	// a cleared draft must not be written back by a stale queued entry.
	if state.Submitted {
		h.flusher.Forget(clientID)
	} else {
		h.flusher.Mark(clientID, state.Draft, completedList(state))
	}
	c.JSON(http.StatusOK, resp)
}

// Previous steps back without re-validation.
func (h *QuestionnaireHandler) Previous(c *gin.Context) {
	clientID := c.Param("client_id")
	ctrl := h.controller(clientID)
	c.JSON(http.StatusOK, h.stateResponse(clientID, ctrl.Previous()))
}

func (h *QuestionnaireHandler) stateResponse(clientID string, state wizard.State) models.WizardStateResponse {
	submissionID := state.SubmissionID
	if submissionID == "" {
		submissionID = h.store.LastSubmission(clientID)
	}
	return models.WizardStateResponse{
		StepID:         h.steps[state.StepIndex].ID,
		StepIndex:      state.StepIndex,
		StepCount:      len(h.steps),
		CompletedSteps: completedList(state),
		Submitting:     state.Submitting,
		Submitted:      state.Submitted,
		SubmissionID:   submissionID,
		Draft:          state.Draft,
	}
}

func completedList(state wizard.State) []int {
	out := make([]int, 0, len(state.CompletedSteps))
	for i := 0; i < 64; i++ {
		if state.CompletedSteps[i] {
			out = append(out, i)
		}
	}
	return out
}

// applyAnswers merges non-nil sections from the request into the draft.
// Images replace the whole list when present.
func applyAnswers(d *models.AnswerDraft, req *models.AnswersRequest) {
	if req.Profile != nil {
		d.Profile = req.Profile
	}
	if req.Personal != nil {
		d.Personal = req.Personal
	}
	if req.Goals != nil {
		d.Goals = req.Goals
	}
	if req.Health != nil {
		d.Health = req.Health
	}
	if req.Diet != nil {
		d.Diet = req.Diet
	}
	if req.Workout != nil {
		d.Workout = req.Workout
	}
	if req.Files != nil {
		d.Files = req.Files
	}
	if req.Measurements != nil {
		d.Measurements = req.Measurements
	}
	if req.Images != nil {
		d.Images = req.Images
	}
	if req.Program != nil {
		d.Program = req.Program
	}
}
