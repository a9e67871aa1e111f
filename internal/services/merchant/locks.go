package merchant

import "sync"

// lockManager hands out one RWMutex per merchant id. Purchases hold the
// read lock across the eligibility check and the provider charge; state
// transitions take the write lock, so a merchant cannot be deactivated
// in the middle of an in-flight charge.
type lockManager struct {
	locks sync.Map // merchantID -> *sync.RWMutex
}

func (m *lockManager) get(merchantID string) *sync.RWMutex {
	if mu, ok := m.locks.Load(merchantID); ok {
		return mu.(*sync.RWMutex)
	}
	mu, _ := m.locks.LoadOrStore(merchantID, &sync.RWMutex{})
	return mu.(*sync.RWMutex)
}
