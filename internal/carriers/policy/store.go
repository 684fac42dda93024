package policy

import (
	"sync"

	"carrier-simulator/internal/carriers/models"
)

// policyRecord keeps the bound policy together with the request and quote
// that produced it, for later lifecycle operations.
type policyRecord struct {
	Policy    models.Policy
	Bind      models.BindRequest
	Quote     models.QuoteRecord
	CreatedAt string
}

// store holds bound policies plus their append-only endorsement and
// certificate histories. Everything is in-memory; records survive for the
// process lifetime only.
type store struct {
	mu           sync.RWMutex
	policies     map[string]policyRecord
	endorsements map[string][]models.Endorsement
	certificates map[string][]models.Certificate
}

func newStore() *store {
	return &store{
		policies:     make(map[string]policyRecord),
		endorsements: make(map[string][]models.Endorsement),
		certificates: make(map[string][]models.Certificate),
	}
}

func (s *store) putPolicy(policyID string, rec policyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policies[policyID] = rec
}

func (s *store) getPolicy(policyID string) (policyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.policies[policyID]
	return rec, ok
}

// addEndorsement appends and returns the new endorsement count.
func (s *store) addEndorsement(policyID string, e models.Endorsement) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endorsements[policyID] = append(s.endorsements[policyID], e)
	return len(s.endorsements[policyID])
}

func (s *store) addCertificate(policyID string, c models.Certificate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.certificates[policyID] = append(s.certificates[policyID], c)
}

func (s *store) endorsementCount(policyID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.endorsements[policyID])
}

func (s *store) certificateCount(policyID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.certificates[policyID])
}
