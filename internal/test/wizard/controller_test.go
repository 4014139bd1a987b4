package wizard_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/wizard"
)

// memoryStore is an in-memory DraftStore for controller tests.
type memoryStore struct {
	mu       sync.Mutex
	drafts   map[string]models.AnswerDraft
	steps    map[string][]int
	lastSubs map[string]string
	saveErr  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		drafts:   make(map[string]models.AnswerDraft),
		steps:    make(map[string][]int),
		lastSubs: make(map[string]string),
	}
}

func (m *memoryStore) Load(clientID string) (models.AnswerDraft, []int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.drafts[clientID], m.steps[clientID]
}

func (m *memoryStore) Save(clientID string, draft models.AnswerDraft, completedSteps []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.drafts[clientID] = draft
	m.steps[clientID] = completedSteps
	return nil
}

func (m *memoryStore) Clear(clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, clientID)
	delete(m.steps, clientID)
	return nil
}

func (m *memoryStore) SetLastSubmission(clientID, submissionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSubs[clientID] = submissionID
	return nil
}

type stubSubmitter struct {
	id    string
	err   error
	calls int
}

func (s *stubSubmitter) Submit(ctx context.Context, draft models.AnswerDraft) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

func completeDraft() models.AnswerDraft {
	return models.AnswerDraft{
		Profile: &models.ProfileSection{
			UserName:    "Test User",
			Email:       "test@example.com",
			PhoneNumber: "5551234567",
			Profession:  "Engineer",
		},
		Personal: &models.PersonalSection{
			AgeBracket:      "30_39",
			HeightCm:        180,
			CurrentWeightKg: 90,
			TargetWeightKg:  80,
		},
		Goals: &models.GoalsSection{PrimaryGoal: "lose_weight"},
	}
}

func newController(store wizard.DraftStore, submitter wizard.Submitter) *wizard.Controller {
	return wizard.NewController("client-1", wizard.Steps(), store, submitter)
}

func TestController_StartsAtFirstStep(t *testing.T) {
	ctrl := newController(newMemoryStore(), &stubSubmitter{})
	state := ctrl.State()
	assert.Equal(t, 0, state.StepIndex)
	assert.False(t, state.Submitted)
	assert.Empty(t, state.CompletedSteps)
}

func TestController_ValidationBlocksAdvance(t *testing.T) {
	ctrl := newController(newMemoryStore(), &stubSubmitter{})

	state, errs, err := ctrl.Next(context.Background(), false)
	require.NoError(t, err)
	assert.NotEmpty(t, errs)
	assert.Equal(t, 0, state.StepIndex)
	assert.False(t, state.CompletedSteps[0])
}

func TestController_AdvanceMarksCompleted(t *testing.T) {
	store := newMemoryStore()
	ctrl := newController(store, &stubSubmitter{})

	_, err := ctrl.UpdateDraft(func(d *models.AnswerDraft) {
		*d = completeDraft()
	})
	require.NoError(t, err)

	state, errs, err := ctrl.Next(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, 1, state.StepIndex)
	assert.True(t, state.CompletedSteps[0])

	// Advance persisted through the store.
	_, steps := store.Load("client-1")
	assert.Equal(t, []int{0}, steps)
}

func TestController_PreviousStopsAtZero(t *testing.T) {
	ctrl := newController(newMemoryStore(), &stubSubmitter{})
	state := ctrl.Previous()
	assert.Equal(t, 0, state.StepIndex)
}

func TestController_IndexNeverLeavesBounds(t *testing.T) {
	ctrl := newController(newMemoryStore(), &stubSubmitter{})
	_, err := ctrl.UpdateDraft(func(d *models.AnswerDraft) { *d = completeDraft() })
	require.NoError(t, err)

	stepCount := len(wizard.Steps())
	for i := 0; i < stepCount+5; i++ {
		state, _, err := ctrl.Next(context.Background(), false)
		if errors.Is(err, wizard.ErrConfirmationRequired) {
			assert.Equal(t, stepCount-1, state.StepIndex)
			continue
		}
		require.NoError(t, err)
		assert.Less(t, state.StepIndex, stepCount)
	}
	for i := 0; i < stepCount+5; i++ {
		state := ctrl.Previous()
		assert.GreaterOrEqual(t, state.StepIndex, 0)
	}
}

func walkToLastStep(t *testing.T, ctrl *wizard.Controller) {
	t.Helper()
	_, err := ctrl.UpdateDraft(func(d *models.AnswerDraft) { *d = completeDraft() })
	require.NoError(t, err)

	stepCount := len(wizard.Steps())
	for i := 0; i < stepCount-1; i++ {
		_, errs, err := ctrl.Next(context.Background(), false)
		require.NoError(t, err)
		require.Empty(t, errs)
	}
	require.Equal(t, stepCount-1, ctrl.State().StepIndex)
}

func TestController_LastStepRequiresConfirmation(t *testing.T) {
	ctrl := newController(newMemoryStore(), &stubSubmitter{id: "FIT-1-1"})
	walkToLastStep(t, ctrl)

	_, _, err := ctrl.Next(context.Background(), false)
	assert.ErrorIs(t, err, wizard.ErrConfirmationRequired)
}

func TestController_ConfirmedSubmitClearsDraft(t *testing.T) {
	store := newMemoryStore()
	submitter := &stubSubmitter{id: "FIT-1700000000-1"}
	ctrl := newController(store, submitter)
	walkToLastStep(t, ctrl)

	state, errs, err := ctrl.Next(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.True(t, state.Submitted)
	assert.Equal(t, "FIT-1700000000-1", state.SubmissionID)
	assert.Equal(t, 1, submitter.calls)

	d, steps := store.Load("client-1")
	assert.Nil(t, d.Profile)
	assert.Empty(t, steps)
	assert.Equal(t, "FIT-1700000000-1", store.lastSubs["client-1"])

	// Submitting again is a no-op, not a duplicate write.
	_, _, err = ctrl.Next(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, 1, submitter.calls)
}

func TestController_FailedSubmitKeepsState(t *testing.T) {
	store := newMemoryStore()
	submitter := &stubSubmitter{err: errors.New("primary write failed")}
	ctrl := newController(store, submitter)
	walkToLastStep(t, ctrl)

	state, _, err := ctrl.Next(context.Background(), true)
	require.Error(t, err)
	assert.False(t, state.Submitted)
	assert.Equal(t, len(wizard.Steps())-1, state.StepIndex)

	// Draft still persisted for a retry.
	d, _ := store.Load("client-1")
	require.NotNil(t, d.Profile)
}

func TestController_ResumesFromCompletedSteps(t *testing.T) {
	store := newMemoryStore()
	store.drafts["client-1"] = completeDraft()
	store.steps["client-1"] = []int{0, 1, 2}

	ctrl := newController(store, &stubSubmitter{})
	state := ctrl.State()
	assert.Equal(t, 3, state.StepIndex)
	assert.True(t, state.CompletedSteps[0])
	assert.True(t, state.CompletedSteps[2])
}

func TestController_ResumeIgnoresOutOfRangeSteps(t *testing.T) {
	store := newMemoryStore()
	store.steps["client-1"] = []int{0, 99, -3}

	ctrl := newController(store, &stubSubmitter{})
	state := ctrl.State()
	assert.Equal(t, 1, state.StepIndex)
	assert.False(t, state.CompletedSteps[99])
}

// blockingSubmitter holds Submit open until released so the test can observe
// the controller mid-submission.
type blockingSubmitter struct {
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (s *blockingSubmitter) Submit(ctx context.Context, draft models.AnswerDraft) (string, error) {
	s.calls++
	close(s.entered)
	<-s.release
	return "FIT-1700000000-9", nil
}

func TestController_DuplicateSubmitFailsFast(t *testing.T) {
	submitter := &blockingSubmitter{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	ctrl := newController(newMemoryStore(), submitter)
	walkToLastStep(t, ctrl)

	done := make(chan error, 1)
	go func() {
		_, _, err := ctrl.Next(context.Background(), true)
		done <- err
	}()

	<-submitter.entered
	assert.True(t, ctrl.State().Submitting)

	_, _, err := ctrl.Next(context.Background(), true)
	assert.ErrorIs(t, err, wizard.ErrSubmissionInFlight)

	close(submitter.release)
	require.NoError(t, <-done)

	state := ctrl.State()
	assert.True(t, state.Submitted)
	assert.False(t, state.Submitting)
	assert.Equal(t, 1, submitter.calls)
}
