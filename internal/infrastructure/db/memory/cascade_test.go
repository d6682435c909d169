package memory

import (
	"fmt"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// Delete helpers replay the ON DELETE rules of the SQL schema so the store
// tests can check that the in-memory tables keep the same references.

// deleteOrganization removes the organization and cascades to its users,
// objectives, projects (and their expenses), measurements and coverage.
// Tickets and transactions still referencing it block the delete.
func (s *Store) deleteOrganization(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orgs[id]; !ok {
		return domain.ErrNotFound
	}
	for _, t := range s.tickets {
		if t.OrganizationID == id {
			return fmt.Errorf("organization %d still owns tickets", id)
		}
	}
	for _, t := range s.transactions {
		if t.OrganizationID == id {
			return fmt.Errorf("organization %d still owns transactions", id)
		}
	}
	for uid, u := range s.users {
		if u.OrganizationID == id {
			delete(s.users, uid)
		}
	}
	for oid, o := range s.objectives {
		if o.OrganizationID == id {
			delete(s.objectives, oid)
		}
	}
	for pid, p := range s.projects {
		if p.OrganizationID == id {
			s.deleteProjectLocked(pid)
		}
	}
	for mid, m := range s.measurements {
		if m.OrganizationID == id {
			delete(s.measurements, mid)
		}
	}
	for k := range s.coverage {
		if k.orgID == id {
			delete(s.coverage, k)
		}
	}
	delete(s.orgs, id)
	return nil
}

// deleteZone removes the zone, its coverage pairs, and nulls the zone of
// projects and tickets.
func (s *Store) deleteZone(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[id]; !ok {
		return domain.ErrNotFound
	}
	for k := range s.coverage {
		if k.zoneID == id {
			delete(s.coverage, k)
		}
	}
	for pid, p := range s.projects {
		if p.ZoneID != nil && *p.ZoneID == id {
			p.ZoneID = nil
			s.projects[pid] = p
		}
	}
	for tid, t := range s.tickets {
		if t.ZoneID != nil && *t.ZoneID == id {
			t.ZoneID = nil
			s.tickets[tid] = t
		}
	}
	delete(s.zones, id)
	return nil
}

// deleteProject removes the project with its expenses and detaches its
// tickets.
func (s *Store) deleteProject(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return domain.ErrNotFound
	}
	s.deleteProjectLocked(id)
	return nil
}

func (s *Store) deleteProjectLocked(id int64) {
	for eid, e := range s.expenses {
		if e.ProjectID == id {
			delete(s.expenses, eid)
		}
	}
	for tid, t := range s.tickets {
		if t.ProjectID != nil && *t.ProjectID == id {
			t.ProjectID = nil
			s.tickets[tid] = t
		}
	}
	delete(s.projects, id)
}

// deleteTicket removes the ticket and its evidence.
func (s *Store) deleteTicket(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return domain.ErrNotFound
	}
	for eid, e := range s.evidence {
		if e.TicketID == id {
			delete(s.evidence, eid)
		}
	}
	delete(s.tickets, id)
	return nil
}
