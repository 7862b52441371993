package sequence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/genius/constants"
)

func TestInitialLength(t *testing.T) {
	g := NewSeededGenerator(42)
	for _, n := range []int{0, 1, 2, 3, 4, 20} {
		seq := g.Initial(n)
		assert.Len(t, seq, n)
		assert.True(t, Valid(seq))
	}
	assert.NotNil(t, g.Initial(-1))
}

func TestExtendDoesNotAlias(t *testing.T) {
	g := NewGenerator(NewScriptedSource(7))

	base := make([]int, 2, 10) // spare capacity would invite aliasing
	base[0], base[1] = 2, 5

	ext := g.Extend(base)
	require.Equal(t, []int{2, 5, 7}, ext)
	assert.Equal(t, []int{2, 5}, base, "input must be unchanged")

	ext[0] = 8
	assert.Equal(t, 2, base[0], "output must not share storage with input")

	again := g.Extend(base)
	ext[2] = 0
	assert.Equal(t, 7, again[2])
}

func TestExtendEmpty(t *testing.T) {
	g := NewGenerator(NewScriptedSource(4))
	assert.Equal(t, []int{4}, g.Extend(nil))
}

func TestDrawsInRange(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		c := g.Next()
		require.GreaterOrEqual(t, c, 0)
		require.Less(t, c, constants.CellCount)
		seen[c] = true
	}
	assert.Len(t, seen, constants.CellCount, "every cell should appear over many draws")
}

func TestSeededDeterminism(t *testing.T) {
	a := NewSeededGenerator(99).Initial(16)
	b := NewSeededGenerator(99).Initial(16)
	assert.Equal(t, a, b)
}

func TestScriptedSource(t *testing.T) {
	s := NewScriptedSource(2, 5, 11, -1)
	assert.Equal(t, 2, s.Intn(9))
	assert.Equal(t, 5, s.Intn(9))
	assert.Equal(t, 2, s.Intn(9))
	assert.Equal(t, 8, s.Intn(9))
	assert.Equal(t, 2, s.Intn(9), "cycles after exhaustion")
	assert.Equal(t, 5, s.Draws())

	assert.Equal(t, 0, NewScriptedSource().Intn(9))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(nil))
	assert.True(t, Valid([]int{0, 8}))
	assert.False(t, Valid([]int{9}))
	assert.False(t, Valid([]int{-1}))
}
