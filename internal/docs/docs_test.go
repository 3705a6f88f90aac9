package docs

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopics(t *testing.T) {
	assert.Equal(t, []string{"drag", "lanes", "slots"}, Topics())
}

func TestGet(t *testing.T) {
	body, ok := Get(" Lanes ")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(body, "# Reordering lanes"))

	_, ok = Get("../docs")
	assert.False(t, ok)
	_, ok = Get("nope")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	body, _ := Get("slots")
	out := ansi.Strip(Render(body, 60, true))
	assert.Contains(t, out, "Slots")
	assert.NotContains(t, out, "# Slots")
}
