package submission

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"fitness-intake-backend/internal/models"
)

// Store is the table-write surface the saga drives. The backing store offers
// no multi-table transaction primitive, so atomicity is best-effort.
type Store interface {
	InsertSubmission(ctx context.Context, rec *models.SubmissionRecord) error
	InsertMeasurements(ctx context.Context, rec *models.MeasurementRecord) error
	InsertBodyImages(ctx context.Context, recs []models.BodyImageRecord) error
	DeleteSubmission(ctx context.Context, submissionID string) error
}

// Uploader pushes a binary object to storage and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, data []byte) (string, error)
	Delete(ctx context.Context, fileURL string) error
}

// RollbackPolicy decides whether a secondary-table failure rolls back the
// primary submission row.
type RollbackPolicy int

const (
	// TolerateSecondary keeps the submission when a measurements or image
	// insert fails; the failure is logged and the submission still succeeds.
	// This is the documented default.
	TolerateSecondary RollbackPolicy = iota
	// StrictRollback deletes the submission row and attempts to remove
	// uploaded files when any post-primary write fails.
	StrictRollback
)

// Saga executes the submission transaction as an ordered sequence of forward
// writes with compensating deletes.
type Saga struct {
	store    Store
	uploader Uploader
	policy   RollbackPolicy
	newID    func() string
	logger   logrus.FieldLogger
}

func NewSaga(store Store, uploader Uploader, policy RollbackPolicy) *Saga {
	return &Saga{
		store:    store,
		uploader: uploader,
		policy:   policy,
		newID:    NewSubmissionID,
		logger:   logrus.StandardLogger(),
	}
}

// Submit resolves pending uploads, mints the submission identifier and writes
// the three record kinds in order. The returned identifier is valid whenever
// the primary write succeeded.
func (s *Saga) Submit(ctx context.Context, draft models.AnswerDraft) (string, error) {
	if s.store == nil {
		return "", &PrimaryWriteError{Err: errors.New("database not configured")}
	}

	uploaded := s.resolveUploads(ctx, &draft)

	submissionID := s.newID()

	rec := buildSubmission(draft, submissionID, MetaFromContext(ctx))
	if err := s.store.InsertSubmission(ctx, &rec); err != nil {
		// Nothing was written; no compensation needed beyond orphaned
		// uploads, which are cleaned up eagerly.
		s.deleteFiles(ctx, uploaded)
		return "", &PrimaryWriteError{Err: err}
	}

	var secondary error
	if m := buildMeasurements(draft, submissionID); m != nil {
		if err := s.store.InsertMeasurements(ctx, m); err != nil {
			secondary = &SecondaryWriteError{Table: "body_measurements", Err: err}
			s.logger.WithError(err).WithField("submission_id", submissionID).
				Error("measurements insert failed")
		}
	}
	if imgs := buildImages(draft, submissionID); len(imgs) > 0 {
		if err := s.store.InsertBodyImages(ctx, imgs); err != nil {
			secondary = &SecondaryWriteError{Table: "full_body_images", Err: err}
			s.logger.WithError(err).WithField("submission_id", submissionID).
				Error("body images insert failed")
		}
	}

	if secondary != nil && s.policy == StrictRollback {
		s.rollback(ctx, submissionID, uploaded)
		return "", secondary
	}

	return submissionID, nil
}

// resolveUploads pushes pending file bytes to object storage. A failed
// individual upload leaves its field absent; it never aborts the submission.
// Returns the URLs uploaded in this call, for compensation.
func (s *Saga) resolveUploads(ctx context.Context, draft *models.AnswerDraft) []string {
	var uploaded []string

	if f := draft.Files; f != nil {
		type pending struct {
			field string
			name  string
			data  []byte
			dest  *string
		}
		for _, p := range []pending{
			{"blood report", f.PendingBloodReportName, f.PendingBloodReport, &f.BloodReportURL},
			{"body composition report", f.PendingBodyCompName, f.PendingBodyComposition, &f.BodyCompositionReportURL},
			{"aspiration image", f.PendingAspirationImgName, f.PendingAspirationImage, &f.AspirationImageURL},
		} {
			if len(p.data) == 0 || *p.dest != "" {
				continue
			}
			folder := "reports"
			if p.field == "aspiration image" {
				folder = "images"
			}
			url, err := s.uploader.Upload(ctx, folder, storageFilename(p.name), p.data)
			if err != nil {
				uerr := &UploadError{Field: p.field, Err: err}
				s.logger.WithError(uerr).Warn("file upload failed, field left empty")
				continue
			}
			*p.dest = url
			uploaded = append(uploaded, url)
		}
		f.PendingBloodReport = nil
		f.PendingBodyComposition = nil
		f.PendingAspirationImage = nil
	}

	for i := range draft.Images {
		img := &draft.Images[i]
		if len(img.Pending) == 0 || img.FileURL != "" {
			continue
		}
		url, err := s.uploader.Upload(ctx, "images", storageFilename(img.PendingName), img.Pending)
		if err != nil {
			uerr := &UploadError{Field: "body image " + img.ViewType, Err: err}
			s.logger.WithError(uerr).Warn("file upload failed, image dropped")
			img.Pending = nil
			continue
		}
		img.FileURL = url
		img.Pending = nil
		uploaded = append(uploaded, url)
	}

	return uploaded
}

// rollback is the compensating path under StrictRollback: delete the
// submission row, then remove files uploaded during this transaction.
// Compensation failures are logged, never propagated.
func (s *Saga) rollback(ctx context.Context, submissionID string, uploaded []string) {
	if err := s.store.DeleteSubmission(ctx, submissionID); err != nil {
		s.logger.WithError(err).WithField("submission_id", submissionID).
			Error("compensating submission delete failed")
	}
	s.deleteFiles(ctx, uploaded)
}

func (s *Saga) deleteFiles(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.uploader.Delete(ctx, url); err != nil {
			s.logger.WithError(err).WithField("file_url", url).
				Warn("compensating file delete failed")
		}
	}
}

func storageFilename(original string) string {
	ext := filepath.Ext(original)
	if ext == "" {
		ext = ".bin"
	}
	return time.Now().Format("20060102150405") + "-" + StorageToken() + ext
}
