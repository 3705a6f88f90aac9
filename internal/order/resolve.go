// Package order computes stack structures after a commit is relocated.
//
// Everything here is pure: inputs are never mutated and series that a move
// does not touch are returned sharing their backing arrays with the input,
// so callers can detect changes by identity.
package order

import (
	"restack-cli/internal/model"
)

// ResolveMove returns the stack that results from moving drag.CommitID to
// target.
//
// ok is false when the target cannot be honoured: the anchor commit is not in
// the stack, the target series does not exist, or the anchor is no longer in
// the target series once the dragged commit is removed (e.g. the anchor is
// the dragged commit itself). Callers must not persist anything in that case.
//
// The only error is *InvariantViolation, returned when the dragged commit is
// not in the stack at all.
func ResolveMove(st model.Stack, drag model.DragPayload, target model.DropTarget) (model.Stack, bool, error) {
	pool := map[model.CommitID]int{}
	for i, sr := range st.Series {
		for _, c := range sr.CommitIDs {
			pool[c] = i
		}
	}
	if !target.Anchor.IsTop() {
		if _, ok := pool[target.Anchor.Commit]; !ok {
			return model.Stack{}, false, nil
		}
	}
	srcIdx, ok := pool[drag.CommitID]
	if !ok {
		return model.Stack{}, false, &InvariantViolation{StackID: st.ID, CommitID: drag.CommitID}
	}

	dstIdx := st.FindSeries(target.SeriesName)
	if dstIdx < 0 {
		return model.Stack{}, false, nil
	}

	src := without(st.Series[srcIdx].CommitIDs, drag.CommitID)
	dst := src
	if dstIdx != srcIdx {
		dst = st.Series[dstIdx].CommitIDs
	}

	insertAt := 0
	if !target.Anchor.IsTop() {
		at := indexOf(dst, target.Anchor.Commit)
		if at < 0 {
			return model.Stack{}, false, nil
		}
		insertAt = at + 1
	}
	dst = inserted(dst, insertAt, drag.CommitID)

	// Moving into the slot the commit already occupies leaves the series
	// as-is, which keeps the no-op observable by identity.
	if dstIdx == srcIdx && equalIDs(dst, st.Series[srcIdx].CommitIDs) {
		return st, true, nil
	}

	out := model.Stack{ID: st.ID, Series: make([]model.Series, len(st.Series))}
	copy(out.Series, st.Series)
	if dstIdx != srcIdx {
		out.Series[srcIdx] = model.Series{Name: st.Series[srcIdx].Name, CommitIDs: src}
	}
	out.Series[dstIdx] = model.Series{Name: st.Series[dstIdx].Name, CommitIDs: dst}
	return out, true, nil
}

// Changed returns the names of series in after whose commit lists are not
// the same backing array as in before.
func Changed(before, after model.Stack) []string {
	var names []string
	for i, sr := range after.Series {
		if i >= len(before.Series) || !sameArray(before.Series[i].CommitIDs, sr.CommitIDs) {
			names = append(names, sr.Name)
		}
	}
	return names
}

// Equal reports whether two stacks have the same series names and commit order.
func Equal(a, b model.Stack) bool {
	if len(a.Series) != len(b.Series) {
		return false
	}
	for i := range a.Series {
		if a.Series[i].Name != b.Series[i].Name || !equalIDs(a.Series[i].CommitIDs, b.Series[i].CommitIDs) {
			return false
		}
	}
	return true
}

func without(ids []model.CommitID, id model.CommitID) []model.CommitID {
	out := make([]model.CommitID, 0, len(ids))
	for _, c := range ids {
		if c != id {
			out = append(out, c)
		}
	}
	return out
}

// inserted returns a fresh slice with id inserted at i.
func inserted(ids []model.CommitID, i int, id model.CommitID) []model.CommitID {
	if i > len(ids) {
		i = len(ids)
	}
	out := make([]model.CommitID, 0, len(ids)+1)
	out = append(out, ids[:i]...)
	out = append(out, id)
	out = append(out, ids[i:]...)
	return out
}

func indexOf(ids []model.CommitID, id model.CommitID) int {
	for i, c := range ids {
		if c == id {
			return i
		}
	}
	return -1
}

func equalIDs(a, b []model.CommitID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameArray(a, b []model.CommitID) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
