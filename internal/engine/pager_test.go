package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagerWalksInSteps(t *testing.T) {
	rows := make([]int, 250)
	for i := range rows {
		rows[i] = i
	}
	p := NewPager(100)

	page := Next(p, rows)
	require.Len(t, page, 100)
	assert.Equal(t, 0, page[0])
	assert.Equal(t, 100, p.Shown)

	page = Next(p, rows)
	require.Len(t, page, 100)
	assert.Equal(t, 100, page[0])
	assert.Equal(t, 200, p.Shown)

	page = Next(p, rows)
	require.Len(t, page, 50)
	assert.Equal(t, 249, page[49])
	assert.Equal(t, 250, p.Shown)

	// Exhausted: empty page, cursor untouched.
	page = Next(p, rows)
	assert.Empty(t, page)
	assert.Equal(t, 250, p.Shown)
}

func TestPagerRemainingAndDone(t *testing.T) {
	p := NewPager(100)
	assert.Equal(t, 250, p.Remaining(250))
	assert.False(t, p.Done(250))

	rows := make([]string, 250)
	Next(p, rows)
	Next(p, rows)
	assert.Equal(t, 50, p.Remaining(250))

	Next(p, rows)
	assert.Equal(t, 0, p.Remaining(250))
	assert.True(t, p.Done(250))

	assert.True(t, NewPager(100).Done(0))
}

func TestPagerReset(t *testing.T) {
	p := NewPager(50)
	rows := make([]int, 80)
	Next(p, rows)
	p.Reset()
	assert.Equal(t, 0, p.Shown)
	assert.Len(t, Next(p, rows), 50)
}

func TestPagerShrunkenRows(t *testing.T) {
	// A stale cursor past the end of a smaller row set yields nothing.
	p := NewPager(100)
	Next(p, make([]int, 150))
	assert.Equal(t, 100, p.Shown)
	assert.Empty(t, Next(p, make([]int, 40)))
	assert.Equal(t, 0, p.Remaining(40))
}
