package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurstEmitsAndExpires(t *testing.T) {
	b := newBurst(42)
	b.resize(80, 24)

	b.step(frameInterval)
	assert.Equal(t, burstSize, b.len(), "first step emits a burst")

	for i := 0; i < 10; i++ {
		b.step(frameInterval)
	}
	assert.GreaterOrEqual(t, b.len(), burstSize, "a second burst after 500ms")

	b.reset()
	assert.Zero(t, b.len())
}

func TestBurstParticlesFallOut(t *testing.T) {
	b := newBurst(7)
	b.resize(40, 10)
	b.step(frameInterval)
	b.sinceEmit = -time.Hour // stop emitting

	for i := 0; i < int(particleLife/frameInterval)+1; i++ {
		b.step(frameInterval)
	}
	assert.Zero(t, b.len())
}

func TestBurstWithoutSizeIsInert(t *testing.T) {
	b := newBurst(1)
	b.step(frameInterval)
	assert.Zero(t, b.len())
}

func TestOverlaySkipsContentRows(t *testing.T) {
	b := newBurst(1)
	b.resize(10, 3)
	b.particles = []particle{{x: 2, y: 0}, {x: 4, y: 1}}

	screen := strings.Join([]string{
		strings.Repeat(" ", 10),
		"  12:00   ",
		strings.Repeat(" ", 10),
	}, "\n")
	out := strings.Split(b.overlay(screen), "\n")

	assert.Equal(t, "  "+particleGlyph+"      ", out[0])
	assert.Equal(t, "  12:00   ", out[1])
	assert.Equal(t, strings.Repeat(" ", 10), out[2])
}

func TestDrawRowCollapsesOverlaps(t *testing.T) {
	row := drawRow(6, []int{0, 1, 5})
	// x=5 would overflow the row and is dropped.
	assert.Equal(t, particleGlyph+"    ", row)
}
