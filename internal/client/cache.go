package client

import (
	"strings"
	"sync"
	"time"
)

// Logical query ids. Parameterised queries append ":<id>".
const (
	KeyUserProfile           = "userProfile"
	KeyDoctorStats           = "dashboardStats"
	KeyAppointments          = "appointments"
	KeyPatientHistory        = "patientHistory"
	KeyPrescription          = "prescription"
	KeyAllPharmacies         = "allPharmacies"
	KeyPharmacyStock         = "pharmacyStock"
	KeyPharmacyStats         = "pharmacyDashboardStats"
	KeyStockItems            = "stockItems"
	KeyIncomingPrescriptions = "incomingPrescriptions"
	KeyOfflineOrders         = "offlineOrders"
	KeyPharmacyProfile       = "pharmacyProfile"
	KeyPharmacyProfileStatus = "pharmacyProfileStatus"
	KeyAuditLogs             = "auditLogs"
)

type cacheEntry struct {
	raw       []byte
	expiresAt time.Time
}

type queryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newQueryCache(ttl time.Duration) *queryCache {
	return &queryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (q *queryCache) get(key string) ([]byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	e, ok := q.entries[key]
	if !ok {
		return nil, false
	}
	if !q.now().Before(e.expiresAt) {
		delete(q.entries, key)
		return nil, false
	}
	return e.raw, true
}

func (q *queryCache) set(key string, raw []byte) {
	if q.ttl <= 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[key] = cacheEntry{raw: raw, expiresAt: q.now().Add(q.ttl)}
}

// invalidate drops each key and every parameterised variant of it.
func (q *queryCache) invalidate(keys ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, key := range keys {
		delete(q.entries, key)
		prefix := key + ":"
		for k := range q.entries {
			if strings.HasPrefix(k, prefix) {
				delete(q.entries, k)
			}
		}
	}
}

func (q *queryCache) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = make(map[string]cacheEntry)
}
