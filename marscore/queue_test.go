package marscore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessQueueSetPopEmpty(t *testing.T) {
	q := newProcessQueueSet(2, 8)
	_, ok, err := q.pop(0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProcessQueueSetFIFOOrder(t *testing.T) {
	q := newProcessQueueSet(1, 8)
	require.NoError(t, q.pushBack(0, 10))
	require.NoError(t, q.pushBack(0, 20))

	pc, ok, err := q.pop(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(10), pc)

	pc, ok, err = q.pop(0)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint32(20), pc)
}

func TestProcessQueueSetDropsOnOverflow(t *testing.T) {
	q := newProcessQueueSet(1, 3)
	for i := uint32(0); i < 5; i++ {
		require.NoError(t, q.pushBack(0, i))
	}
	list, err := q.read(0)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.Equal(t, []uint32{0, 1, 2}, list)
}

func TestProcessQueueSetReplaceRejectsOversizedList(t *testing.T) {
	q := newProcessQueueSet(1, 2)
	err := q.replace(0, []uint32{1, 2, 3})
	assert.Error(t, err)
}

func TestProcessQueueSetActiveWarriorsSortedAscending(t *testing.T) {
	q := newProcessQueueSet(4, 8)
	require.NoError(t, q.pushBack(3, 0))
	require.NoError(t, q.pushBack(1, 0))
	assert.Equal(t, []uint32{1, 3}, q.activeWarriors())
}

func TestProcessQueueSetResetAll(t *testing.T) {
	q := newProcessQueueSet(2, 8)
	require.NoError(t, q.pushBack(0, 1))
	require.NoError(t, q.pushBack(1, 1))
	q.resetAll()
	assert.Empty(t, q.activeWarriors())
}

func TestProcessQueueSetInvalidWarrior(t *testing.T) {
	q := newProcessQueueSet(1, 8)
	_, _, err := q.pop(5)
	assert.Error(t, err)
}
