package entity

type (
	// Prim is an append-only arena addressed by a typed handle.
	// Handles are assigned in creation order and stay valid until Clear.
	Prim[K ~int32, V any] struct {
		x []V
	}

	// Map is a sparse side table keyed by the same handles.
	// Entries hold the zero value of V until assigned.
	Map[K ~int32, V any] struct {
		x []V
	}
)

func (m *Prim[K, V]) Push(v V) K {
	k := K(len(m.x))
	m.x = append(m.x, v)

	return k
}

func (m *Prim[K, V]) At(k K) *V { return &m.x[k] }

func (m *Prim[K, V]) Len() int      { return len(m.x) }
func (m *Prim[K, V]) IsEmpty() bool { return len(m.x) == 0 }

func (m *Prim[K, V]) Clear() { m.x = m.x[:0] }

func (m *Prim[K, V]) Clone() Prim[K, V] {
	return Prim[K, V]{x: append([]V{}, m.x...)}
}

func (m *Map[K, V]) Get(k K) (v V) {
	if k >= 0 && int(k) < len(m.x) {
		v = m.x[k]
	}

	return v
}

// Ref grows the table up to k and returns the entry address.
func (m *Map[K, V]) Ref(k K) *V {
	for int(k) >= len(m.x) {
		var zero V
		m.x = append(m.x, zero)
	}

	return &m.x[k]
}

func (m *Map[K, V]) Set(k K, v V) { *m.Ref(k) = v }

func (m *Map[K, V]) Len() int      { return len(m.x) }
func (m *Map[K, V]) IsEmpty() bool { return len(m.x) == 0 }

func (m *Map[K, V]) Clear() { m.x = m.x[:0] }

func (m *Map[K, V]) Clone() Map[K, V] {
	return Map[K, V]{x: append([]V{}, m.x...)}
}
