package mapslicehelp

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/exp/constraints"
)

// Intern returns the insertion position of k in m, adding k at the end when it is new.
func Intern[K comparable, I constraints.Unsigned](m *orderedmap.OrderedMap[K, I], k K) I {
	if i, ok := m.Get(k); ok {
		return i
	}
	i := I(m.Len())
	m.Set(k, i)
	return i
}

// OrderedMapKeys returns the keys of m, oldest first.
func OrderedMapKeys[K comparable, V any](m *orderedmap.OrderedMap[K, V]) []K {
	l := make([]K, m.Len())
	i := 0
	for p := m.Oldest(); p != nil; p = p.Next() {
		l[i] = p.Key
		i++
	}
	return l
}
