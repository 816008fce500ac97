package marscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffset(t *testing.T) {
	cases := []struct {
		name  string
		base  uint32
		delta int64
		size  uint32
		want  uint32
	}{
		{"positive wraps", 7999, 1, 8000, 0},
		{"zero delta", 42, 0, 8000, 42},
		{"negative wraps once", 0, -1, 8000, 7999},
		{"negative wraps twice", 0, -8001, 8000, 7999},
		{"large positive delta", 0, 16001, 8000, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := offset(c.base, c.delta, c.size)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestOffsetRejectsZeroSize(t *testing.T) {
	_, err := offset(0, 0, 0)
	assert.Error(t, err)
}

func TestAddSubRoundTrip(t *testing.T) {
	v, err := add(5, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(8), v)

	v, err = sub(2, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
}

func TestMulWidensIntermediate(t *testing.T) {
	v, err := mul(70000, 70000, 8000)
	require.NoError(t, err)
	assert.Less(t, v, uint32(8000))
}

func TestDivModPartial(t *testing.T) {
	v, ok := div(10, 3)
	assert.True(t, ok)
	assert.Equal(t, uint32(3), v)

	_, ok = div(10, 0)
	assert.False(t, ok)

	v, ok = mod(10, 3)
	assert.True(t, ok)
	assert.Equal(t, uint32(1), v)

	_, ok = mod(10, 0)
	assert.False(t, ok)
}

func TestIncDec(t *testing.T) {
	v, err := inc(7999, 8000)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)

	v, err = dec(0, 8000)
	require.NoError(t, err)
	assert.Equal(t, uint32(7999), v)
}
