// Package sequence produces the random cell sequences the player reproduces
package sequence

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/genius/constants"
)

// Source is the random source consumed by the generator
// *rand.Rand satisfies it; tests substitute a scripted source
type Source interface {
	Intn(n int) int
}

// Generator draws uniform cell indices in [0, constants.CellCount)
type Generator struct {
	src Source
}

// NewGenerator creates a generator over src
func NewGenerator(src Source) *Generator {
	return &Generator{src: src}
}

// NewSeededGenerator creates a generator over math/rand, seed 0 selects a time-based seed
func NewSeededGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Next draws one cell index
func (g *Generator) Next() int {
	return g.src.Intn(constants.CellCount)
}

// Initial produces n independent draws
func (g *Generator) Initial(n int) []int {
	if n <= 0 {
		return []int{}
	}
	seq := make([]int, n)
	for i := range seq {
		seq[i] = g.Next()
	}
	return seq
}

// Extend returns a new sequence with one draw appended, seq is never modified or aliased
func (g *Generator) Extend(seq []int) []int {
	out := make([]int, len(seq), len(seq)+1)
	copy(out, seq)
	return append(out, g.Next())
}

// Valid reports whether every element of seq is a cell index
func Valid(seq []int) bool {
	for _, c := range seq {
		if c < 0 || c >= constants.CellCount {
			return false
		}
	}
	return true
}
