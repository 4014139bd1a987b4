package submission

import (
	"fmt"
	"math/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const storageTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSubmissionID mints a client-side submission identifier:
// FIT-<unix-seconds>-<random>. Immutable once written.
func NewSubmissionID() string {
	return fmt.Sprintf("FIT-%d-%d", time.Now().Unix(), rand.Intn(1000))
}

// StorageToken returns a collision-resistant suffix for uploaded file names.
func StorageToken() string {
	return gonanoid.MustGenerate(storageTokenAlphabet, 10)
}
