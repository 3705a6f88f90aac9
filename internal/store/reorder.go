package store

import (
	"errors"
	"sort"
	"strings"
)

type rankedLane struct {
	ID   string
	Rank string
}

// ReorderResult describes the rank updates needed to realize a lane move.
// RankByID includes only lanes whose ranks should change.
type ReorderResult struct {
	RankByID     map[string]string
	WindowIDs    []string // lanes re-ranked by the fallback path, in final order
	UsedFallback bool
}

func sortLanesByRank(ls []rankedLane) {
	sort.SliceStable(ls, func(i, j int) bool {
		ri, rj := normRank(ls[i].Rank), normRank(ls[j].Rank)
		if ri != rj {
			return ri < rj
		}
		return ls[i].ID < ls[j].ID
	})
}

// PlanReorderRanks plans rank updates for moving one lane.
//
// insertAt is the index of the moved lane in the order *after removing it*.
// Only the moved lane is re-ranked when its new neighbours leave room;
// otherwise the smallest window around the insertion point whose outer
// bounds are strictly increasing is re-ranked.
func PlanReorderRanks(sibs []rankedLane, movedID string, insertAt int) (ReorderResult, error) {
	movedID = strings.TrimSpace(movedID)
	if movedID == "" {
		return ReorderResult{}, errors.New("missing movedID")
	}
	if len(sibs) == 0 {
		return ReorderResult{RankByID: map[string]string{}}, nil
	}

	cur := append([]rankedLane{}, sibs...)
	sortLanesByRank(cur)

	movedIdx := -1
	for i := range cur {
		if cur[i].ID == movedID {
			movedIdx = i
			break
		}
	}
	if movedIdx < 0 {
		return ReorderResult{}, errors.New("moved lane not found")
	}
	moved := cur[movedIdx]

	rest := make([]rankedLane, 0, len(cur)-1)
	rest = append(rest, cur[:movedIdx]...)
	rest = append(rest, cur[movedIdx+1:]...)

	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}
	if insertAt == movedIdx {
		return ReorderResult{RankByID: map[string]string{}}, nil
	}
	// Moving up, prefer to rebalance the displaced neighbours to the right.
	preferRight := insertAt < movedIdx

	final := make([]rankedLane, 0, len(cur))
	final = append(final, rest[:insertAt]...)
	final = append(final, moved)
	final = append(final, rest[insertAt:]...)

	existing := ranksExcluding(final, map[string]bool{movedID: true})
	if r, ok := rankBetweenNeighbors(existing, final, insertAt); ok {
		if normRank(moved.Rank) == r {
			return ReorderResult{RankByID: map[string]string{}}, nil
		}
		return ReorderResult{RankByID: map[string]string{movedID: r}}, nil
	}

	lo, hi := minimalValidWindow(final, insertAt, preferRight)
	lower, upper := "", ""
	if lo > 0 {
		lower = final[lo-1].Rank
	}
	if hi+1 < len(final) {
		upper = final[hi+1].Rank
	}

	excl := map[string]bool{}
	for i := lo; i <= hi; i++ {
		excl[final[i].ID] = true
	}
	existing = ranksExcluding(final, excl)

	res := ReorderResult{
		RankByID:     map[string]string{},
		WindowIDs:    make([]string, 0, hi-lo+1),
		UsedFallback: true,
	}
	curLower := lower
	for i := lo; i <= hi; i++ {
		r, err := RankBetweenUnique(existing, curLower, upper)
		if err != nil {
			return ReorderResult{}, err
		}
		existing[r] = true
		res.RankByID[final[i].ID] = r
		res.WindowIDs = append(res.WindowIDs, final[i].ID)
		curLower = r
	}
	return res, nil
}

// planLaneOrder returns the rank updates that turn cur into next. A single
// lane move (the only thing a drag produces) goes through PlanReorderRanks;
// any other permutation re-ranks every lane.
func planLaneOrder(cur []rankedLane, next []string) (map[string]string, error) {
	cur = append([]rankedLane{}, cur...)
	sortLanesByRank(cur)
	ids := make([]string, len(cur))
	for i, l := range cur {
		ids[i] = l.ID
	}
	if equalStrings(ids, next) {
		return map[string]string{}, nil
	}

	for i, id := range ids {
		at := indexString(next, id)
		if at < 0 {
			break
		}
		if equalStrings(removeAt(ids, i), removeAt(next, at)) {
			res, err := PlanReorderRanks(cur, id, at)
			if err != nil {
				return nil, err
			}
			return res.RankByID, nil
		}
	}

	out := make(map[string]string, len(next))
	prev := ""
	for _, id := range next {
		r, err := RankAfter(prev)
		if err != nil {
			return nil, err
		}
		out[id] = r
		prev = r
	}
	return out, nil
}

func ranksExcluding(ls []rankedLane, exclude map[string]bool) map[string]bool {
	existing := map[string]bool{}
	for _, l := range ls {
		if exclude[l.ID] {
			continue
		}
		if r := normRank(l.Rank); r != "" {
			existing[r] = true
		}
	}
	return existing
}

// rankBetweenNeighbors computes a rank for final[idx] from its immediate
// neighbours. ok is false when the bounds leave no room.
func rankBetweenNeighbors(existing map[string]bool, final []rankedLane, idx int) (string, bool) {
	lower, upper := "", ""
	if idx > 0 {
		lower = normRank(final[idx-1].Rank)
	}
	if idx+1 < len(final) {
		upper = normRank(final[idx+1].Rank)
	}
	if lower != "" && upper != "" && lower >= upper {
		return "", false
	}
	r, err := RankBetweenUnique(existing, lower, upper)
	if err != nil {
		return "", false
	}
	return r, true
}

// minimalValidWindow finds the smallest window [lo, hi] containing idx whose
// outer bounds are open-ended or leave room for a rank between them.
// preferRight breaks ties between windows of equal size toward the right of
// idx.
func minimalValidWindow(final []rankedLane, idx int, preferRight bool) (lo, hi int) {
	if idx < 0 || idx >= len(final) {
		return 0, len(final) - 1
	}
	valid := func(lo, hi int) bool {
		if lo == 0 || hi+1 >= len(final) {
			return true
		}
		_, err := RankBetween(final[lo-1].Rank, final[hi+1].Rank)
		return err == nil
	}
	for size := 1; size <= len(final); size++ {
		startMin := idx - (size - 1)
		if startMin < 0 {
			startMin = 0
		}
		startMax := idx
		if startMax+size > len(final) {
			startMax = len(final) - size
		}
		if preferRight {
			for lo := startMax; lo >= startMin; lo-- {
				if valid(lo, lo+size-1) {
					return lo, lo + size - 1
				}
			}
		} else {
			for lo := startMin; lo <= startMax; lo++ {
				if valid(lo, lo+size-1) {
					return lo, lo + size - 1
				}
			}
		}
	}
	return 0, len(final) - 1
}

func equalStrings(a, b []string) bool {
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

func indexString(a []string, s string) int {
	for i, v := range a {
		if v == s {
			return i
		}
	}
	return -1
}

func removeAt(a []string, i int) []string {
	out := make([]string, 0, len(a))
	out = append(out, a[:i]...)
	return append(out, a[i+1:]...)
}
