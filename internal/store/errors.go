package store

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidOrderError rejects an order that would break a stack invariant:
// commits appearing twice, disappearing, or moving between stacks.
type InvalidOrderError struct {
	StackID string
	Reason  string
}

func (e InvalidOrderError) Error() string {
	if e.StackID == "" {
		return "invalid order: " + e.Reason
	}
	return fmt.Sprintf("invalid order for stack %s: %s", e.StackID, e.Reason)
}
