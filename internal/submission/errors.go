package submission

import "fmt"

// UploadError is a per-file failure while resolving pending uploads. It is
// non-fatal: the affected field is stored as absent.
type UploadError struct {
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s: %v", e.Field, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PrimaryWriteError means the submission record insert failed. Fatal: nothing
// was written, nothing to compensate.
type PrimaryWriteError struct {
	Err error
}

func (e *PrimaryWriteError) Error() string {
	return fmt.Sprintf("failed to insert submission record: %v", e.Err)
}

func (e *PrimaryWriteError) Unwrap() error { return e.Err }

// SecondaryWriteError means a measurements or body image insert failed after
// the primary write succeeded. Non-fatal under the tolerant policy.
type SecondaryWriteError struct {
	Table string
	Err   error
}

func (e *SecondaryWriteError) Error() string {
	return fmt.Sprintf("failed to insert %s: %v", e.Table, e.Err)
}

func (e *SecondaryWriteError) Unwrap() error { return e.Err }
