package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/annel0/blockworld/internal/eventbus"
	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/stretchr/testify/assert"
)

func TestParseStringList(t *testing.T) {
	assert.Nil(t, parseStringList(""))
	assert.Equal(t, []string{"world.place", "world.remove"}, parseStringList(" world.place, ,world.remove "))
}

func TestPrintCues(t *testing.T) {
	var buf bytes.Buffer
	printCues(&buf, block.DefaultCatalog())

	out := buf.String()
	assert.Contains(t, out, "place_metal")
	assert.Contains(t, out, "break_soft")
	assert.Contains(t, out, "error")
}

func TestFormatOutcome(t *testing.T) {
	ev := &eventbus.Envelope{Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), Source: "engine"}

	line := formatOutcome(ev, world.Outcome{
		Outcome:   world.ResultRejected,
		Operation: world.OperationPlace,
		Sound:     block.SoundError,
		Position:  vec.Vec3{X: 1, Y: 2, Z: 3},
		Reason:    world.RejectUnsupported,
	})
	assert.Contains(t, line, "2024-06-01T12:00:00Z REJ")
	assert.Contains(t, line, "unsupported")
	assert.Contains(t, line, "cue=error")
}
