package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBitsetAll(t *testing.T) {
	b := newBitsetAll(5)
	assert.Equal(t, 5, b.count())
	for i := 0; i < 5; i++ {
		assert.True(t, b.test(i))
	}
	assert.False(t, b.test(5))
	assert.Equal(t, b.count(), b.recount())
}

func TestBitsetClear(t *testing.T) {
	b := newBitsetAll(70) // spans two words
	b.clear(3)
	b.clear(65)
	assert.False(t, b.test(3))
	assert.False(t, b.test(65))
	assert.Equal(t, 68, b.count())
	assert.Equal(t, b.count(), b.recount())

	// clearing an already-clear bit must not double-decrement
	b.clear(3)
	assert.Equal(t, 68, b.count())
}

func TestBitsetClone(t *testing.T) {
	b := newBitsetAll(10)
	b.clear(2)
	clone := b.clone()
	clone.clear(4)

	assert.True(t, b.test(4)) // clearing the clone must not affect the original
	assert.False(t, clone.test(4))
	assert.False(t, clone.test(2))
	assert.Equal(t, 9, b.count())
	assert.Equal(t, 8, clone.count())
}

func TestBitsetSupersetOf(t *testing.T) {
	a := newBitsetAll(10)
	b := newBitsetAll(10)
	assert.True(t, a.supersetOf(b))

	b2 := a.clone()
	b2.clear(3)
	assert.True(t, a.supersetOf(b2))
	assert.False(t, b2.supersetOf(a))
}
