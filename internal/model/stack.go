package model

import "strings"

// CommitID is an opaque commit identifier. Its content is never interpreted.
type CommitID string

// Series is a named, ordered list of commits inside a stack.
type Series struct {
	Name      string
	CommitIDs []CommitID
}

// Stack is an ordered list of series. Series order is top-to-bottom as rendered.
type Stack struct {
	ID     string
	Series []Series
}

// FindSeries returns the index of the series with the given name, or -1.
func (s Stack) FindSeries(name string) int {
	for i := range s.Series {
		if s.Series[i].Name == name {
			return i
		}
	}
	return -1
}

// SeriesOf returns the name of the series holding id.
func (s Stack) SeriesOf(id CommitID) (string, bool) {
	for _, sr := range s.Series {
		for _, c := range sr.CommitIDs {
			if c == id {
				return sr.Name, true
			}
		}
	}
	return "", false
}

// CommitCount returns the number of commits across all series.
func (s Stack) CommitCount() int {
	n := 0
	for _, sr := range s.Series {
		n += len(sr.CommitIDs)
	}
	return n
}

// Anchor identifies where inside a series a drop lands: the top of the series,
// or immediately after a commit.
type Anchor struct {
	Commit CommitID // empty means top
}

// AnchorTop is the insertion point before the first commit of a series.
var AnchorTop = Anchor{}

// After returns an anchor immediately after id.
func After(id CommitID) Anchor { return Anchor{Commit: id} }

func (a Anchor) IsTop() bool { return a.Commit == "" }

// String renders the anchor in slot syntax. A commit whose id would read as
// "top", starts with "@" or contains ":" is written with a leading "@".
func (a Anchor) String() string {
	if a.IsTop() {
		return "top"
	}
	c := string(a.Commit)
	if c == "top" || strings.HasPrefix(c, "@") || strings.Contains(c, ":") {
		return "@" + c
	}
	return c
}

// DropTarget is an insertion point inside a stack.
type DropTarget struct {
	SeriesName string
	Anchor     Anchor
}

func (t DropTarget) String() string {
	return t.SeriesName + ":" + t.Anchor.String()
}

// ParseDropTarget parses the "<series>:top" / "<series>:<commit>" slot
// syntax. "<series>:@<commit>" always names a commit, so "A:@top" is the
// commit "top" and "A:top" the top of A. Series names must not contain ":@".
func ParseDropTarget(s string) (DropTarget, bool) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ":@"); i > 0 {
		if i+2 == len(s) {
			return DropTarget{}, false
		}
		return DropTarget{SeriesName: s[:i], Anchor: After(CommitID(s[i+2:]))}, true
	}
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return DropTarget{}, false
	}
	name := s[:i]
	a := s[i+1:]
	if a == "top" {
		return DropTarget{SeriesName: name, Anchor: AnchorTop}, true
	}
	return DropTarget{SeriesName: name, Anchor: After(CommitID(a))}, true
}

// DragPayload describes the commit being dragged and where it came from.
type DragPayload struct {
	SourceStackID    string
	SourceSeriesName string
	CommitID         CommitID
}

// Lane is the top-level unit of the board. One lane renders one stack.
type Lane struct {
	StackID string
	Title   string
}
