package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	x, y := Resolve(0.5, 0.25, 1000, 400, 0, 0)
	assert.Equal(t, 500, x)
	assert.Equal(t, 100, y)

	// Offsets apply after scaling.
	x, y = Resolve(0.5, 0.25, 1000, 400, -10, 3)
	assert.Equal(t, 490, x)
	assert.Equal(t, 103, y)

	x, y = Resolve(0, 1, 640, 480, 0, 0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 480, y)
}

func TestScaleFont(t *testing.T) {
	t.Parallel()

	// Same height as reference: unchanged.
	assert.Equal(t, 54, ScaleFont(54, 467, 467))

	// Double height doubles the size.
	assert.Equal(t, 108, ScaleFont(54, 934, 467))

	// Small template clamps at the legibility floor.
	assert.Equal(t, 10, ScaleFont(20, 233, 467))
	assert.Equal(t, 10, ScaleFont(1, 467, 467))
}
