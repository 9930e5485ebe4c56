package funcgraph

import (
	"math/rand/v2"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/fine-structures/rho/rho"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestNewRandomModes(t *testing.T) {
	for _, mode := range []rho.GenMode{rho.GenUniform, rho.GenNoSelf, rho.GenNonZero} {
		for seed := uint64(1); seed <= 20; seed++ {
			X, err := NewRandom(7, newRand(seed), mode)
			require.NoError(t, err)
			require.Equal(t, 7, X.Size())

			for i := 0; i < X.Size(); i++ {
				next, err := X.Neighbor(i)
				require.NoError(t, err)
				assert.True(t, next >= 0 && next < 7, "successor out of range")
				switch mode {
				case rho.GenNoSelf:
					assert.NotEqual(t, i, next, "mode %v drew a self-loop", mode)
				case rho.GenNonZero:
					assert.NotEqual(t, 0, next, "mode %v drew node 0", mode)
				}
			}
		}
	}
}

func TestNewRandomInvalid(t *testing.T) {
	_, err := NewRandom(0, newRand(1), rho.GenUniform)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	_, err = NewRandom(1, newRand(1), rho.GenNoSelf)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	_, err = NewRandom(1, newRand(1), rho.GenNonZero)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	X, err := NewRandom(1, newRand(1), rho.GenUniform)
	require.NoError(t, err)
	next, err := X.Neighbor(0)
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestNewRandomDeterministic(t *testing.T) {
	A, err := NewRandom(12, newRand(42), rho.GenNonZero)
	require.NoError(t, err)
	B, err := NewRandom(12, newRand(42), rho.GenNonZero)
	require.NoError(t, err)
	assert.Equal(t, A.Successors(), B.Successors())
}

func TestNewFromSequence(t *testing.T) {
	X, err := NewFromSequence([]int{1, 2, 3, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, 5, X.Size())
	assert.Equal(t, "1,2,3,4,2", X.String())

	_, err = NewFromSequence(nil)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	_, err = NewFromSequence([]int{3, 1, 2})
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "successor[0] = 3")

	_, err = NewFromSequence([]int{0, -1})
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))
}

func TestSequenceIsCopied(t *testing.T) {
	vals := []int{1, 0}
	X, err := NewFromSequence(vals)
	require.NoError(t, err)
	vals[0] = 0
	next, _ := X.Neighbor(0)
	assert.Equal(t, 1, next)

	succ := X.Successors()
	succ[1] = 1
	next, _ = X.Neighbor(1)
	assert.Equal(t, 0, next)
}

func TestNeighborOutOfRange(t *testing.T) {
	X, err := NewFromSequence([]int{1, 0})
	require.NoError(t, err)

	_, err = X.Neighbor(2)
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
	_, err = X.Neighbor(-1)
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
}

func TestParseSequence(t *testing.T) {
	for _, line := range []string{"3,1,2", "3 1 2", "3, 1, 2,", " 3 ,1\t2 "} {
		vals, err := ParseSequence(line)
		require.NoError(t, err, line)
		assert.Equal(t, []int{3, 1, 2}, vals, line)
	}

	for _, line := range []string{"3,x", "3,,1", "a b c", ",3"} {
		_, err := ParseSequence(line)
		assert.True(t, errors.Is(err, rho.ErrParse), "%q should fail to parse", line)
	}

	vals, err := ParseSequence("")
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestParsedSequenceRangeCheck(t *testing.T) {
	vals, err := ParseSequence("3,1,2")
	require.NoError(t, err)
	_, err = NewFromSequence(vals)
	assert.True(t, errors.Is(err, rho.ErrOutOfRange))
}

func TestLoadToken(t *testing.T) {
	fsys := fstest.MapFS{
		"rho.txt":   {Data: []byte("1, 2, 3, 4, 2\nignored line\n")},
		"bad.txt":   {Data: []byte("1, two, 3\n")},
		"empty.txt": {Data: []byte("")},
	}
	open := FSOpener(fsys)

	src, err := LoadToken("6", open)
	require.NoError(t, err)
	assert.False(t, src.IsSequence())
	assert.Equal(t, 6, src.Count)

	src, err = LoadToken("rho.txt", open)
	require.NoError(t, err)
	require.True(t, src.IsSequence())
	assert.Equal(t, []int{1, 2, 3, 4, 2}, src.Values)

	X, err := src.Build(nil, rho.GenUniform)
	require.NoError(t, err)
	assert.Equal(t, 5, X.Size())

	_, err = LoadToken("bad.txt", open)
	assert.True(t, errors.Is(err, rho.ErrParse))

	src, err = LoadToken("empty.txt", open)
	require.NoError(t, err)
	_, err = src.Build(nil, rho.GenUniform)
	assert.True(t, errors.Is(err, rho.ErrInvalidArgument))

	_, err = LoadToken("missing.txt", open)
	assert.Error(t, err)
}

func TestWriteAsString(t *testing.T) {
	X, err := NewFromSequence([]int{10, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	b := strings.Builder{}
	X.WriteAsString(&b, rho.PrintOpts{Successors: true, Indices: true})
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, len(lines[0]), len(lines[1]))
	assert.True(t, strings.HasPrefix(lines[0], "10, 0"))
	assert.True(t, strings.HasPrefix(lines[1], " 0, 1"))
}

func TestAppendEncoding(t *testing.T) {
	A, _ := NewFromSequence([]int{1, 0})
	B, _ := NewFromSequence([]int{1, 1})
	C, _ := NewFromSequence([]int{1, 0})
	assert.NotEqual(t, A.AppendEncoding(nil), B.AppendEncoding(nil))
	assert.Equal(t, A.AppendEncoding(nil), C.AppendEncoding(nil))
}
