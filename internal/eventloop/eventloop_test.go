package eventloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_FiresInDueOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.After(20*time.Millisecond, func() { got = append(got, "b") })
	m.After(10*time.Millisecond, func() { got = append(got, "a") })

	m.Advance(5 * time.Millisecond)
	assert.Empty(t, got)
	assert.Equal(t, 2, m.Pending())

	m.Advance(15 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_StopSuppressesCallback(t *testing.T) {
	m := NewManual()
	called := false
	tm := m.After(10*time.Millisecond, func() { called = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop(), "second stop is a no-op")
	m.Advance(time.Second)
	assert.False(t, called)
}

func TestTea_FireRunsOnceAndHonoursStop(t *testing.T) {
	s := NewTea()
	n := 0
	tm := s.After(time.Millisecond, func() { n++ })
	require.NotNil(t, s.Drain())
	assert.Nil(t, s.Drain(), "drain empties the queue")

	s.Fire(FireMsg{Seq: 1})
	s.Fire(FireMsg{Seq: 1})
	assert.Equal(t, 1, n)
	assert.False(t, tm.Stop(), "fired timers cannot be stopped")

	tm2 := s.After(time.Millisecond, func() { n++ })
	tm2.Stop()
	s.Fire(FireMsg{Seq: 2})
	assert.Equal(t, 1, n)
}
