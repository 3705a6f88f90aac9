package model

// SeriesRecord is the transport shape of a series: store rows, YAML files,
// CLI output and the ReorderStack call all use it. Stack remains the only
// in-memory representation the ordering code works on.
type SeriesRecord struct {
	Name      string   `json:"name" yaml:"name"`
	CommitIDs []string `json:"commitIds" yaml:"commitIds"`
}

// StackRecord is the transport shape of a stack.
type StackRecord struct {
	ID     string         `json:"id" yaml:"id"`
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Series []SeriesRecord `json:"series" yaml:"series"`
}

// Records converts the stack's series to their transport shape.
func Records(s Stack) []SeriesRecord {
	out := make([]SeriesRecord, 0, len(s.Series))
	for _, sr := range s.Series {
		ids := make([]string, 0, len(sr.CommitIDs))
		for _, c := range sr.CommitIDs {
			ids = append(ids, string(c))
		}
		out = append(out, SeriesRecord{Name: sr.Name, CommitIDs: ids})
	}
	return out
}

// FromRecords builds a Stack from transport records.
func FromRecords(id string, recs []SeriesRecord) Stack {
	st := Stack{ID: id, Series: make([]Series, 0, len(recs))}
	for _, r := range recs {
		ids := make([]CommitID, 0, len(r.CommitIDs))
		for _, c := range r.CommitIDs {
			ids = append(ids, CommitID(c))
		}
		st.Series = append(st.Series, Series{Name: r.Name, CommitIDs: ids})
	}
	return st
}
