// Package memory is a thread-safe in-process implementation of every
// repository port. It keeps the same constraints as the PostgreSQL schema
// (unique emails, foreign keys) so that services behave the same on both.
// The API never deletes rows, so the schema's cascades only exist as test
// helpers here.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// Store holds all tables behind a single lock.
type Store struct {
	mu  sync.RWMutex
	seq int64

	orgs         map[int64]domain.Organization
	zones        map[int64]domain.Zone
	coverage     map[coverageKey]struct{}
	users        map[int64]domain.User
	objectives   map[int64]domain.Objective
	transactions map[int64]domain.Transaction
	projects     map[int64]domain.Project
	expenses     map[int64]domain.Expense
	tickets      map[int64]domain.Ticket
	evidence     map[int64]domain.Evidence
	measurements map[int64]domain.Measurement

	now func() time.Time
}

type coverageKey struct {
	orgID  int64
	zoneID int64
}

func NewStore() *Store {
	return &Store{
		orgs:         make(map[int64]domain.Organization),
		zones:        make(map[int64]domain.Zone),
		coverage:     make(map[coverageKey]struct{}),
		users:        make(map[int64]domain.User),
		objectives:   make(map[int64]domain.Objective),
		transactions: make(map[int64]domain.Transaction),
		projects:     make(map[int64]domain.Project),
		expenses:     make(map[int64]domain.Expense),
		tickets:      make(map[int64]domain.Ticket),
		evidence:     make(map[int64]domain.Evidence),
		measurements: make(map[int64]domain.Measurement),
		now:          time.Now,
	}
}

// nextID must be called with the write lock held. IDs are unique across
// tables, which keeps tests from passing by accident on a shared id.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// --- Seeding and deletion helpers. These mirror rows an operator inserts
// directly in the database; no service exposes them.

// AddOrganization inserts an organization. A non-zero id is kept as is.
func (s *Store) AddOrganization(org domain.Organization) domain.Organization {
	s.mu.Lock()
	defer s.mu.Unlock()
	if org.ID == 0 {
		org.ID = s.nextID()
	} else if org.ID > s.seq {
		s.seq = org.ID
	}
	if org.Type == "" {
		org.Type = domain.OrganizationNGO
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = s.now().UTC()
	}
	s.orgs[org.ID] = org
	return org
}

func (s *Store) AddZone(zone domain.Zone) domain.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	if zone.ID == 0 {
		zone.ID = s.nextID()
	} else if zone.ID > s.seq {
		s.seq = zone.ID
	}
	s.zones[zone.ID] = zone
	return zone
}

// AddCoverage declares that orgID covers zoneID. Adding an existing pair is
// a no-op.
func (s *Store) AddCoverage(orgID, zoneID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[orgID]; !ok {
		return fmt.Errorf("coverage: organization %d: %w", orgID, domain.ErrNotFound)
	}
	if _, ok := s.zones[zoneID]; !ok {
		return fmt.Errorf("coverage: zone %d: %w", zoneID, domain.ErrNotFound)
	}
	s.coverage[coverageKey{orgID: orgID, zoneID: zoneID}] = struct{}{}
	return nil
}

func (s *Store) AddMeasurement(m domain.Measurement) (domain.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[m.OrganizationID]; !ok {
		return m, fmt.Errorf("measurement: organization %d: %w", m.OrganizationID, domain.ErrNotFound)
	}
	m.ID = s.nextID()
	if m.Source == "" {
		m.Source = domain.SourceManual
	}
	if m.Date.IsZero() {
		m.Date = s.now().UTC()
	}
	s.measurements[m.ID] = m
	return m, nil
}

// EvidenceCount reports how many evidence rows exist in total.
func (s *Store) EvidenceCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.evidence)
}

// sortByID orders any slice by ascending id.
func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}
