package order

import (
	"errors"
	"fmt"

	"restack-cli/internal/model"
)

// ErrInvariant is matched by every InvariantViolation via errors.Is.
var ErrInvariant = errors.New("stack invariant violated")

// InvariantViolation reports a drag payload that references a commit the
// stack does not contain. This is a caller or data bug, not a user state.
type InvariantViolation struct {
	StackID  string
	CommitID model.CommitID
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("commit %s is not part of stack %s", e.CommitID, e.StackID)
}

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariant }
