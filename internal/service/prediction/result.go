package prediction

import (
	"fmt"

	"github.com/google/uuid"
)

// Result is a classified and stored prediction.
type Result struct {
	RecordID uuid.UUID
	Class    int
	Label    string
}

// PersistError reports a prediction that was computed but could not be
// stored. The prediction itself is valid and is returned to the caller.
type PersistError struct {
	Result Result
	Err    error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("store prediction %q: %v", e.Result.Label, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
