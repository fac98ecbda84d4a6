package attack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSchedule_EvenSpacing(t *testing.T) {
	schedule := BuildSchedule(100, 10, 0.9)

	assert.Equal(t, []int{0, 9, 18, 27, 36, 45, 54, 63, 72, 81, 90}, schedule)
}

func TestBuildSchedule_DeduplicatesSmallGraphs(t *testing.T) {
	// 4 nodes, 50 steps: most rounded counts collide and must appear once
	schedule := BuildSchedule(4, 50, 1.0)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, schedule)
}

func TestBuildSchedule_StartsAtBaseline(t *testing.T) {
	for _, steps := range []int{1, 3, 50} {
		schedule := BuildSchedule(10, steps, 0.5)
		assert.Equal(t, 0, schedule[0])
	}
}

func TestBuildSchedule_DegenerateInputs(t *testing.T) {
	assert.Equal(t, []int{0}, BuildSchedule(0, 50, 0.9))
	assert.Equal(t, []int{0}, BuildSchedule(10, 0, 0.9))
	assert.Equal(t, []int{0}, BuildSchedule(10, 50, 0))
	assert.Equal(t, []int{0}, BuildSchedule(10, 50, -0.5))
}

func TestBuildSchedule_CapsFractionAtOne(t *testing.T) {
	schedule := BuildSchedule(5, 5, 2.0)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, schedule)
}
