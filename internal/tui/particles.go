package tui

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	particleGlyph   = "🥐"
	particleLife    = 5 * time.Second
	emitEvery       = 500 * time.Millisecond
	burstSize       = 12
	gravity         = 10.0 // cells/s²
	minSpeed        = 8.0  // cells/s
	maxSpeed        = 16.0 // cells/s
	cellAspectRatio = 0.5  // terminal cells are about twice as tall as wide
)

type particle struct {
	x, y   float64
	vx, vy float64
	age    time.Duration
}

// burst is a croissant fountain emitting from the middle of the screen.
// Particles fall under gravity and are dropped when they leave the sides or
// the bottom, or when they reach the end of their life.
type burst struct {
	rng       *rand.Rand
	particles []particle
	width     int
	height    int
	sinceEmit time.Duration
}

func newBurst(seed uint64) *burst {
	return &burst{
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		sinceEmit: emitEvery, // emit on the first step
	}
}

func (b *burst) resize(width, height int) {
	b.width, b.height = width, height
}

func (b *burst) reset() {
	b.particles = b.particles[:0]
	b.sinceEmit = emitEvery
}

func (b *burst) len() int { return len(b.particles) }

func (b *burst) emit() {
	cx, cy := float64(b.width)/2, float64(b.height)/2
	for i := 0; i < burstSize; i++ {
		angle := b.rng.Float64() * 2 * math.Pi
		speed := minSpeed + b.rng.Float64()*(maxSpeed-minSpeed)
		b.particles = append(b.particles, particle{
			x:  cx,
			y:  cy,
			vx: math.Cos(angle) * speed,
			vy: math.Sin(angle) * speed * cellAspectRatio,
		})
	}
}

// step advances the simulation by dt.
func (b *burst) step(dt time.Duration) {
	if b.width <= 0 || b.height <= 0 {
		return
	}
	b.sinceEmit += dt
	if b.sinceEmit >= emitEvery {
		b.sinceEmit = 0
		b.emit()
	}

	secs := dt.Seconds()
	alive := b.particles[:0]
	for _, p := range b.particles {
		p.age += dt
		p.vy += gravity * cellAspectRatio * secs
		p.x += p.vx * secs
		p.y += p.vy * secs
		if p.age >= particleLife || p.x < 0 || p.x >= float64(b.width) || p.y >= float64(b.height) {
			continue
		}
		alive = append(alive, p)
	}
	b.particles = alive
}

// overlay draws particles onto the blank rows of screen. Rows with content
// are left untouched so the clock stays readable.
func (b *burst) overlay(screen string) string {
	if len(b.particles) == 0 {
		return screen
	}
	lines := strings.Split(screen, "\n")
	cols := make(map[int][]int)
	for _, p := range b.particles {
		row := int(p.y)
		if row < 0 || row >= len(lines) {
			continue
		}
		cols[row] = append(cols[row], int(p.x))
	}
	for row, xs := range cols {
		if strings.TrimSpace(lines[row]) != "" {
			continue
		}
		lines[row] = drawRow(b.width, xs)
	}
	return strings.Join(lines, "\n")
}

// drawRow renders a blank row of width cells with a glyph at each x. The
// glyph is two cells wide, so overlapping particles collapse into one.
func drawRow(width int, xs []int) string {
	cells := make([]bool, width)
	for _, x := range xs {
		if x >= 0 && x+1 < width {
			cells[x] = true
		}
	}
	var sb strings.Builder
	for x := 0; x < width; x++ {
		if cells[x] {
			sb.WriteString(particleGlyph)
			x++
			continue
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}
