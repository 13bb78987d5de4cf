package inventory

import (
	"hash/fnv"
	"slices"
	"sync"
)

const lockStripes = 256

// KeyLocker serializa el trabajo por clave usando mutexes particionados (striped).
// Varias claves se bloquean en orden ascendente de partición, así un TRANSFER
// nunca produce deadlock contra otro movimiento.
type KeyLocker struct {
	stripes [lockStripes]sync.Mutex
}

// NewKeyLocker construye el locker.
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{}
}

// Lock bloquea las particiones de las claves y devuelve la función de liberación.
func (l *KeyLocker) Lock(keys ...string) (unlock func()) {
	idx := make([]int, 0, len(keys))
	for _, k := range keys {
		idx = append(idx, stripeOf(k))
	}
	slices.Sort(idx)
	idx = slices.Compact(idx)
	for _, i := range idx {
		l.stripes[i].Lock()
	}
	return func() {
		for i := len(idx) - 1; i >= 0; i-- {
			l.stripes[idx[i]].Unlock()
		}
	}
}

func stripeOf(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % lockStripes)
}
