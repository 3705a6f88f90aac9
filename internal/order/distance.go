package order

import "restack-cli/internal/model"

// Slots flattens a stack into its ordered drop slots: per series, one top
// slot followed by one slot per commit.
func Slots(st model.Stack) []model.DropTarget {
	out := make([]model.DropTarget, 0, len(st.Series)+st.CommitCount())
	for _, sr := range st.Series {
		out = append(out, model.DropTarget{SeriesName: sr.Name, Anchor: model.AnchorTop})
		for _, c := range sr.CommitIDs {
			out = append(out, model.DropTarget{SeriesName: sr.Name, Anchor: model.After(c)})
		}
	}
	return out
}

// SlotOf returns the slot of the given commit: immediately after itself in
// its own series.
func SlotOf(st model.Stack, id model.CommitID) (model.DropTarget, bool) {
	name, ok := st.SeriesOf(id)
	if !ok {
		return model.DropTarget{}, false
	}
	return model.DropTarget{SeriesName: name, Anchor: model.After(id)}, true
}

// Distance returns index(a) - index(b) over Slots(st), or 0 when either slot
// does not exist. Callers treat 0 as "unknown, do not act".
func Distance(st model.Stack, a, b model.DropTarget) int {
	ia, ib := -1, -1
	for i, s := range Slots(st) {
		if s == a {
			ia = i
		}
		if s == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0
	}
	return ia - ib
}

// IsAdjacentNoop reports whether dropping the commit at target would land it
// where it already is: on its own slot or on the slot right above it.
func IsAdjacentNoop(st model.Stack, id model.CommitID, target model.DropTarget) bool {
	origin, ok := SlotOf(st, id)
	if !ok {
		return false
	}
	d := Distance(st, origin, target)
	return d == 0 || d == 1
}
