package strand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestRefreshSeesMostRecentFlush(t *testing.T) {
	l := NewLatest(0)

	l.Set(1)
	l.Flush()
	l.Set(2)
	l.Set(3)
	l.Flush() // only the most recent pending write before this flush matters

	v, changed := l.Refresh()
	assert.True(t, changed)
	assert.Equal(t, 3, v)
}

func TestLatestRefreshWithNoFlushIsNoOp(t *testing.T) {
	l := NewLatest(5)

	v, changed := l.Refresh()
	assert.False(t, changed)
	assert.Equal(t, 5, v)

	v, changed = l.Refresh()
	assert.False(t, changed)
	assert.Equal(t, 5, v)
}

func TestLatestDoesNotReplaySameValue(t *testing.T) {
	l := NewLatest(0)
	l.Set(42)
	l.Flush()

	v1, changed1 := l.Refresh()
	assert.True(t, changed1)
	assert.Equal(t, 42, v1)

	v2, changed2 := l.Refresh()
	assert.False(t, changed2)
	assert.Equal(t, 42, v2)
}

func TestLatestMultipleFlushesBeforeOneRefresh(t *testing.T) {
	l := NewLatest(0)
	for i := 1; i <= 10; i++ {
		l.Set(i)
		l.Flush()
	}
	v, changed := l.Refresh()
	assert.True(t, changed)
	assert.Equal(t, 10, v)
}
