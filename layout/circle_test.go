package layout

import (
	"math"
	"testing"

	"github.com/fine-structures/rho/rho"
	"github.com/fine-structures/rho/geom"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestPositionsOnCircle(t *testing.T) {
	for n := 1; n <= 64; n++ {
		L, err := New(n, DefaultOptions)
		require.NoError(t, err)
		require.Equal(t, n, L.Size())

		seen := make([]geom.Vec2, 0, n)
		for i := 0; i < n; i++ {
			p, err := L.PositionOf(i)
			require.NoError(t, err)
			assert.InDelta(t, DefaultOptions.Radius, geom.Dist(p, L.Center()), eps, "node %d of %d", i, n)
			for _, q := range seen {
				assert.Greater(t, geom.Dist(p, q), 1e-6, "node %d of %d coincides with an earlier node", i, n)
			}
			seen = append(seen, p)
		}
	}
}

func TestNodeZeroAtTop(t *testing.T) {
	L, err := New(7, DefaultOptions)
	require.NoError(t, err)

	p, err := L.PositionOf(0)
	require.NoError(t, err)
	assert.InDelta(t, 400, p.X, eps)
	assert.InDelta(t, 150, p.Y, eps)

	// nodes advance clockwise on screen: node 1 is right of node 0
	q, err := L.PositionOf(1)
	require.NoError(t, err)
	assert.Greater(t, q.X, p.X)
}

func TestPositionOfOutOfRange(t *testing.T) {
	L, err := New(3, DefaultOptions)
	require.NoError(t, err)

	_, err = L.PositionOf(3)
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
	_, err = L.PositionOf(-1)
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, DefaultOptions)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	opts := DefaultOptions
	opts.Radius = 0
	_, err = New(4, opts)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	opts = DefaultOptions
	opts.Width = -1
	_, err = New(4, opts)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))
}

func TestNodeRadius(t *testing.T) {
	L, err := New(10, DefaultOptions)
	require.NoError(t, err)
	assert.InDelta(t, 2*math.Pi*200/40, L.NodeRadius(), eps)
}

func TestStraightArrow(t *testing.T) {
	L, err := New(6, DefaultOptions)
	require.NoError(t, err)

	arrow, err := L.Arrow(0, 3)
	require.NoError(t, err)
	assert.False(t, arrow.SelfLoop)

	from, _ := L.PositionOf(0)
	to, _ := L.PositionOf(3)
	assert.Equal(t, from, arrow.Tail)
	assert.InDelta(t, L.NodeRadius()+2, geom.Dist(arrow.Tip, to), eps)
	assert.True(t, geom.OnSegment(arrow.Tip, from, to, 1e-6))

	// head corners sit behind the tip, symmetric about the shaft
	for _, barb := range arrow.Barbs {
		assert.Greater(t, geom.Dist(barb, to), geom.Dist(arrow.Tip, to))
	}
	assert.InDelta(t, geom.Dist(arrow.Barbs[0], arrow.Tip), geom.Dist(arrow.Barbs[1], arrow.Tip), 1e-6)
}

func TestSelfLoopArrow(t *testing.T) {
	L, err := New(5, DefaultOptions)
	require.NoError(t, err)

	arrow, err := L.Arrow(2, 2)
	require.NoError(t, err)
	require.True(t, arrow.SelfLoop)

	r := L.NodeRadius()
	assert.InDelta(t, r, arrow.Loop.Radius, eps)
	assert.InDelta(t, DefaultOptions.Radius+r, geom.Dist(arrow.Loop.Center, L.Center()), 1e-6)

	// the tip is on the node's rim
	pos, _ := L.PositionOf(2)
	assert.InDelta(t, r, geom.Dist(arrow.Tip, pos), 1e-6)
}

func TestSingleNodeSelfLoop(t *testing.T) {
	L, err := New(1, DefaultOptions)
	require.NoError(t, err)
	arrow, err := L.Arrow(0, 0)
	require.NoError(t, err)
	assert.True(t, arrow.SelfLoop)

	_, err = L.Arrow(0, 1)
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
}

func TestArrowWithoutHead(t *testing.T) {
	opts := DefaultOptions
	opts.HeadLen = 0
	L, err := New(4, opts)
	require.NoError(t, err)
	arrow, err := L.Arrow(1, 2)
	require.NoError(t, err)
	assert.Equal(t, arrow.Tip, arrow.Barbs[0])
	assert.Equal(t, arrow.Tip, arrow.Barbs[1])
}
