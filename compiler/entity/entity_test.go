package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type slot int32

func TestPrimHandleStability(t *testing.T) {
	var m Prim[slot, string]

	a := m.Push("a")
	b := m.Push("b")

	for i := 0; i < 100; i++ {
		m.Push("x")
	}

	assert.Equal(t, "a", *m.At(a))
	assert.Equal(t, "b", *m.At(b))
	assert.Equal(t, 102, m.Len())
}

func TestPrimClear(t *testing.T) {
	var m Prim[slot, int]

	m.Push(1)
	m.Push(2)

	m.Clear()

	assert.True(t, m.IsEmpty())
	assert.Equal(t, slot(0), m.Push(3))
}

func TestPrimBadHandle(t *testing.T) {
	var m Prim[slot, int]

	m.Push(1)

	assert.Panics(t, func() { m.At(4) })
}

func TestMapDefault(t *testing.T) {
	var m Map[slot, int]

	assert.Equal(t, 0, m.Get(10))
	assert.True(t, m.IsEmpty())

	m.Set(3, 7)

	assert.Equal(t, 7, m.Get(3))
	assert.Equal(t, 0, m.Get(2))
	assert.Equal(t, 0, m.Get(100))
	assert.Equal(t, 4, m.Len())
}

func TestClone(t *testing.T) {
	var m Prim[slot, int]

	a := m.Push(10)

	cp := m.Clone()
	cp.Push(20)
	*cp.At(a) = 11

	assert.Equal(t, 10, *m.At(a))
	assert.Equal(t, 11, *cp.At(a))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 2, cp.Len())
}
