package triangulate

import (
	"math"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVertex(t *testing.T) {
	p := func(x, y float64) v2.Vec { return v2.Vec{X: x, Y: y} }
	tests := []struct {
		name           string
		prev, cur, nxt v2.Vec
		want           vertexClass
	}{
		{"start", p(1, 0), p(0, 1), p(-1, 0), classStart},
		{"end", p(-1, 0), p(0, -1), p(1, 0), classEnd},
		{"split", p(-1, 0), p(0, 1), p(1, 0), classSplit},
		{"merge", p(1, 0), p(0, -1), p(-1, 0), classMerge},
		{"regular descending", p(0, 1), p(0.2, 0), p(0, -1), classRegular},
		{"regular ascending", p(0, -1), p(-0.2, 0), p(0, 1), classRegular},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyVertex(tt.prev, tt.cur, tt.nxt))
		})
	}
}

func TestMonotonePieces(t *testing.T) {
	t.Run("convex stays whole", func(t *testing.T) {
		pts := regularPolygon(7, 1)
		pieces, err := monotonePieces(pts)
		require.NoError(t, err)
		require.Len(t, pieces, 1)
		assert.Len(t, pieces[0], 7)
	})

	t.Run("star splits but covers the same area", func(t *testing.T) {
		pts := star(5, 1, 0.4)
		pieces, err := monotonePieces(pts)
		require.NoError(t, err)
		require.NotEmpty(t, pieces)

		total := 0.0
		for _, ring := range pieces {
			require.GreaterOrEqual(t, len(ring), 3)
			sub := make([]v2.Vec, len(ring))
			for i, idx := range ring {
				sub[i] = pts[idx]
			}
			a := SignedArea(sub)
			assert.Greater(t, a, 0.0, "pieces must be counter-clockwise")
			total += a
		}
		assert.InDelta(t, SignedArea(pts), total, 1e-9)
	})
}

func TestSweepNumericalFixtures(t *testing.T) {
	// Inputs collected from triangulation failures: near-collinear
	// corners and vertices almost level with the sweep line.
	fixtures := [][]v2.Vec{
		{
			{X: 2.001453, Y: 0.0},
			{X: 0.7763586, Y: 2.3893864},
			{X: -3.2887821, Y: 2.3894396},
			{X: -2.7725635, Y: -2.0143867},
			{X: 0.023867942, Y: -0.07345794},
		},
		{
			{X: 2.8768363, Y: 0.0},
			{X: 1.6538008, Y: 2.0738008},
			{X: -0.5499903, Y: 2.4096634},
			{X: -6.9148006, Y: 3.3299913},
			{X: -7.8863497, Y: -3.7978687},
			{X: -0.8668613, Y: -3.7979746},
			{X: 1.1135457, Y: -1.3963413},
		},
		{
			{X: 7.15814, Y: 0.0},
			{X: 2.027697, Y: 2.542652},
			{X: -1.5944574, Y: 6.98577},
			{X: -0.36498743, Y: 0.17576863},
			{X: -2.3863406, Y: -1.149202},
			{X: -0.11696472, Y: -0.5124569},
			{X: 0.40876004, Y: -0.5125686},
		},
	}
	for i, pts := range fixtures {
		for _, algo := range []Algorithm{Sweep, SweepDynamic} {
			t.Run(algo.String(), func(t *testing.T) {
				tris, err := Triangulate(pts, algo, Options{})
				require.NoError(t, err, "fixture %d", i)
				require.Len(t, tris, len(pts)-2)
				assert.InDelta(t, math.Abs(SignedArea(pts)), TotalArea(tris, pts), 1e-6)
			})
		}
	}
}
