package window

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Random placement bounds: x in [50, 250), y in [50, 150)
const (
	PlacementMinX  = 50
	PlacementSpanX = 200
	PlacementMinY  = 50
	PlacementSpanY = 100
)

// Placement chooses the initial position of a new window
type Placement interface {
	Place(desc types.Descriptor) types.Position
}

// PlacementFunc adapts a function to Placement
type PlacementFunc func(desc types.Descriptor) types.Position

// Place calls f(desc)
func (f PlacementFunc) Place(desc types.Descriptor) types.Position {
	return f(desc)
}

// RandomPlacement scatters windows near the top-left corner so successive
// windows do not overlap exactly
type RandomPlacement struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPlacement creates a time-seeded random placement
func NewRandomPlacement() *RandomPlacement {
	seed := uint64(time.Now().UnixNano())
	return NewSeededPlacement(seed, seed>>32)
}

// NewSeededPlacement creates a deterministic random placement
func NewSeededPlacement(seed1, seed2 uint64) *RandomPlacement {
	return &RandomPlacement{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Place returns a position inside the placement bounds
func (p *RandomPlacement) Place(types.Descriptor) types.Position {
	p.mu.Lock()
	defer p.mu.Unlock()

	return types.Position{
		X: PlacementMinX + p.rng.IntN(PlacementSpanX),
		Y: PlacementMinY + p.rng.IntN(PlacementSpanY),
	}
}

// SequencePlacement hands out a fixed list of positions in order, cycling
// when exhausted. An empty sequence places every window at the minimum offset.
type SequencePlacement struct {
	mu        sync.Mutex
	positions []types.Position
	next      int
}

// NewSequencePlacement creates a placement returning positions in order
func NewSequencePlacement(positions ...types.Position) *SequencePlacement {
	return &SequencePlacement{positions: positions}
}

// Place returns the next position in the sequence
func (p *SequencePlacement) Place(types.Descriptor) types.Position {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.positions) == 0 {
		return types.Position{X: PlacementMinX, Y: PlacementMinY}
	}
	pos := p.positions[p.next%len(p.positions)]
	p.next++
	return pos
}
