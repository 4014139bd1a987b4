package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fitness-intake-backend/internal/models"
)

const appDirName = "fitness-intake"

// Store persists in-progress answer drafts and completed-step sets to local
// disk, one JSON file per logical key, namespaced by client token. A refresh
// or crash never loses more than the interval between saves.
type Store struct {
	dir string
}

// DefaultDir resolves the state directory under the user config dir.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create draft directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// sanitize keeps client tokens filesystem-safe.
func sanitize(clientID string) string {
	var b strings.Builder
	for _, r := range clientID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "anonymous"
	}
	return b.String()
}

func (s *Store) draftPath(clientID string) string {
	return filepath.Join(s.dir, "draft-"+sanitize(clientID)+".json")
}

func (s *Store) stepsPath(clientID string) string {
	return filepath.Join(s.dir, "steps-"+sanitize(clientID)+".json")
}

func (s *Store) lastSubmissionPath(clientID string) string {
	return filepath.Join(s.dir, "last-submission-"+sanitize(clientID))
}

// Load reads the persisted draft and completed-step set. Missing or malformed
// files fail soft to empty defaults; corruption must never surface as an
// error to the wizard.
func (s *Store) Load(clientID string) (models.AnswerDraft, []int) {
	var draft models.AnswerDraft
	if data, err := os.ReadFile(s.draftPath(clientID)); err == nil {
		if err := json.Unmarshal(data, &draft); err != nil {
			draft = models.AnswerDraft{}
		}
	}

	var steps []int
	if data, err := os.ReadFile(s.stepsPath(clientID)); err == nil {
		if err := json.Unmarshal(data, &steps); err != nil {
			steps = nil
		}
	}

	return draft, steps
}

// Save serializes and persists the draft and completed-step set. Called on
// every mutation and by the interval flusher.
func (s *Store) Save(clientID string, draft models.AnswerDraft, completedSteps []int) error {
	draftData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if completedSteps == nil {
		completedSteps = []int{}
	}
	stepsData, err := json.Marshal(completedSteps)
	if err != nil {
		return fmt.Errorf("failed to encode completed steps: %w", err)
	}

	if err := writeFileAtomic(s.draftPath(clientID), draftData); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := writeFileAtomic(s.stepsPath(clientID), stepsData); err != nil {
		return fmt.Errorf("failed to write completed steps: %w", err)
	}
	return nil
}

// Clear removes the persisted draft and completed-step set. Only called after
// a confirmed successful submission.
func (s *Store) Clear(clientID string) error {
	for _, path := range []string{s.draftPath(clientID), s.stepsPath(clientID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// SetLastSubmission records the identifier shown on the confirmation view.
func (s *Store) SetLastSubmission(clientID, submissionID string) error {
	if err := writeFileAtomic(s.lastSubmissionPath(clientID), []byte(submissionID)); err != nil {
		return fmt.Errorf("failed to write last submission id: %w", err)
	}
	return nil
}

// LastSubmission returns the last successful submission identifier, empty if
// none.
func (s *Store) LastSubmission(clientID string) string {
	data, err := os.ReadFile(s.lastSubmissionPath(clientID))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
