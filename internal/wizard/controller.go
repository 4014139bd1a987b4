package wizard

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"fitness-intake-backend/internal/models"
)

// Submitter turns an accumulated draft into persisted records and returns the
// minted submission identifier.
type Submitter interface {
	Submit(ctx context.Context, draft models.AnswerDraft) (string, error)
}

// DraftStore is the persistence boundary the controller drives. Load fails
// soft; Save is called on every accepted transition.
type DraftStore interface {
	Load(clientID string) (models.AnswerDraft, []int)
	Save(clientID string, draft models.AnswerDraft, completedSteps []int) error
	Clear(clientID string) error
	SetLastSubmission(clientID, submissionID string) error
}

// State is the complete wizard state for one client. It is a value: transition
// functions take a State and return the next one, so the machine is testable
// without any UI or I/O.
type State struct {
	StepIndex      int
	Draft          models.AnswerDraft
	CompletedSteps map[int]bool
	Submitting     bool
	Submitted      bool
	SubmissionID   string
}

// ErrConfirmationRequired is returned by Next on the last step when the
// caller has not confirmed submission.
var ErrConfirmationRequired = errors.New("submission requires confirmation")

// ErrSubmissionInFlight is returned when a duplicate submit trigger arrives
// while one is already running.
var ErrSubmissionInFlight = errors.New("submission already in flight")

// Controller owns the current step index and orchestrates transitions for one
// client. Transitions are processed one at a time.
type Controller struct {
	mu        sync.Mutex
	clientID  string
	steps     []Step
	store     DraftStore
	submitter Submitter
	state     State
}

func NewController(clientID string, steps []Step, store DraftStore, submitter Submitter) *Controller {
	draft, completed := store.Load(clientID)
	completedSet := make(map[int]bool, len(completed))
	resume := 0
	for _, idx := range completed {
		if idx >= 0 && idx < len(steps) {
			completedSet[idx] = true
			if idx+1 > resume {
				resume = idx + 1
			}
		}
	}
	if resume > len(steps)-1 {
		resume = len(steps) - 1
	}
	return &Controller{
		clientID:  clientID,
		steps:     steps,
		store:     store,
		submitter: submitter,
		state: State{
			StepIndex:      resume,
			Draft:          draft,
			CompletedSteps: completedSet,
		},
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	s := c.state
	completed := make(map[int]bool, len(s.CompletedSteps))
	for k, v := range s.CompletedSteps {
		completed[k] = v
	}
	s.CompletedSteps = completed
	return s
}

// Steps returns the controller's ordered step list.
func (c *Controller) Steps() []Step {
	return c.steps
}

// UpdateDraft merges a partial answers update into the draft and persists it.
func (c *Controller) UpdateDraft(apply func(draft *models.AnswerDraft)) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	apply(&c.state.Draft)
	if err := c.persist(); err != nil {
		return c.snapshot(), err
	}
	return c.snapshot(), nil
}

// Next runs the current step's validator. Validation errors leave the state
// unchanged and are returned for display. On the last step a confirmed pass
// triggers submission.
func (c *Controller) Next(ctx context.Context, confirm bool) (State, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Submitted {
		return c.snapshot(), nil, nil
	}
	if c.state.Submitting {
		return c.snapshot(), nil, ErrSubmissionInFlight
	}

	step := c.steps[c.state.StepIndex]
	if step.Validate != nil {
		if errs := step.Validate(&c.state.Draft); len(errs) > 0 {
			return c.snapshot(), errs, nil
		}
	}

	last := c.state.StepIndex == len(c.steps)-1
	if !last {
		c.state.CompletedSteps[c.state.StepIndex] = true
		c.state.StepIndex++
		if err := c.persist(); err != nil {
			return c.snapshot(), nil, err
		}
		return c.snapshot(), nil, nil
	}

	if !confirm {
		return c.snapshot(), nil, ErrConfirmationRequired
	}
	return c.submit(ctx)
}

// submit releases the transition lock for the duration of the submitter
// call: concurrent State() reads observe Submitting, and a duplicate Next
// fails fast with ErrSubmissionInFlight instead of blocking behind it.
// Called with c.mu held; returns with it held.
func (c *Controller) submit(ctx context.Context) (State, []string, error) {
	c.state.Submitting = true
	draft := c.state.Draft
	c.mu.Unlock()
	submissionID, err := c.submitter.Submit(ctx, draft)
	c.mu.Lock()
	c.state.Submitting = false
	if err != nil {
		// Failed submission keeps the user on the last step, draft intact.
		return c.snapshot(), nil, err
	}

	c.state.CompletedSteps[c.state.StepIndex] = true
	c.state.Submitted = true
	c.state.SubmissionID = submissionID

	if err := c.store.SetLastSubmission(c.clientID, submissionID); err != nil {
		logrus.WithError(err).Warn("failed to record last submission id")
	}
	if err := c.store.Clear(c.clientID); err != nil {
		logrus.WithError(err).Warn("failed to clear draft after submission")
	}
	return c.snapshot(), nil, nil
}

// Previous decrements the step index unless already at the first step. No
// re-validation.
func (c *Controller) Previous() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.StepIndex > 0 && !c.state.Submitting {
		c.state.StepIndex--
	}
	return c.snapshot()
}

func (c *Controller) persist() error {
	return c.store.Save(c.clientID, c.state.Draft, sortedSteps(c.state.CompletedSteps))
}

func sortedSteps(set map[int]bool) []int {
	out := make([]int, 0, len(set))
	for idx := range set {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
