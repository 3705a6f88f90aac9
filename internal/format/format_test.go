package format

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type series struct {
	Name      string   `json:"name"`
	CommitIDs []string `json:"commitIds"`
	Top       bool     `json:"top,omitempty"`
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Output{}.Write(&buf, series{Name: "A", CommitIDs: []string{"c1"}}))
	assert.Equal(t, `{"name":"A","commitIds":["c1"]}`+"\n", buf.String())
}

func TestOutput_EDN(t *testing.T) {
	var buf bytes.Buffer
	v := map[string]any{"distance": -2, "series": []series{{Name: "A", CommitIDs: []string{"c1", "c2"}, Top: true}}}
	require.NoError(t, Output{Format: "edn"}.Write(&buf, v))
	assert.Equal(t, `{:distance -2 :series [{:commit-ids ["c1" "c2"] :name "A" :top true}]}`+"\n", buf.String())
}

func TestOutput_EDNPretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEDN(&buf, map[string]any{"ok": false, "lanes": []string{}}, true))
	assert.Equal(t, "{\n  :lanes []\n  :ok false\n}\n", buf.String())
}

func TestOutput_UnknownFormat(t *testing.T) {
	assert.Error(t, Output{Format: "xml"}.Write(&bytes.Buffer{}, 1))
}

func TestKeyword(t *testing.T) {
	assert.Equal(t, ":stack-id", Keyword("stackId"))
	assert.Equal(t, ":issued-at", Keyword("issued_at"))
	assert.Equal(t, ":id", Keyword("id"))
}
