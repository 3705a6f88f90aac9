package store

import (
	"context"
	"fmt"
	"io"

	"restack-cli/internal/model"

	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML shape used by import/export.
type File struct {
	Stacks []model.StackRecord `yaml:"stacks"`
}

func ReadFile(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode stacks yaml: %w", err)
	}
	seen := map[string]string{}
	for _, st := range f.Stacks {
		if err := validateSeries(st.ID, st.Series); err != nil {
			return File{}, err
		}
		for _, sr := range st.Series {
			for _, c := range sr.CommitIDs {
				if other, ok := seen[c]; ok && other != st.ID {
					return File{}, InvalidOrderError{StackID: st.ID, Reason: fmt.Sprintf("commit %s also in stack %s", c, other)}
				}
				seen[c] = st.ID
			}
		}
	}
	return f, nil
}

func WriteFile(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return err
	}
	return enc.Close()
}

// Import puts every stack of f, in file order.
func (w *Workspace) Import(ctx context.Context, f File) (int, error) {
	for i, st := range f.Stacks {
		if err := w.PutStack(ctx, st); err != nil {
			return i, fmt.Errorf("import stack %s: %w", st.ID, err)
		}
	}
	return len(f.Stacks), nil
}

// Export returns the workspace as a File, stacks in lane order.
func (w *Workspace) Export(ctx context.Context) (File, error) {
	recs, err := w.StackRecords(ctx)
	if err != nil {
		return File{}, err
	}
	return File{Stacks: recs}, nil
}
