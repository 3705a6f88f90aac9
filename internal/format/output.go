package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Output carries the global --format/--pretty choice down to commands.
type Output struct {
	Format string
	Pretty bool
}

// Write renders v as json (default) or edn.
func (o Output) Write(w io.Writer, v any) error {
	switch o.Format {
	case "", "json":
		return WriteJSON(w, v, o.Pretty)
	case "edn":
		return WriteEDN(w, v, o.Pretty)
	default:
		return fmt.Errorf("unknown format: %s", o.Format)
	}
}

// WriteJSON writes one JSON document followed by a newline.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
