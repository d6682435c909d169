package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cuenca-resiliencia/erp-api/internal/core/domain"
)

// SummaryCache is an unbounded ports.SummaryCache without expiry.
type SummaryCache struct {
	mu   sync.Mutex
	data map[int64]domain.FinancialSummary
}

func NewSummaryCache() *SummaryCache {
	return &SummaryCache{data: make(map[int64]domain.FinancialSummary)}
}

func (c *SummaryCache) Get(_ context.Context, orgID int64) (*domain.FinancialSummary, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.data[orgID]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *SummaryCache) Set(_ context.Context, orgID int64, s domain.FinancialSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[orgID] = s
	return nil
}

func (c *SummaryCache) Invalidate(_ context.Context, orgID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, orgID)
	return nil
}

// TicketDedup is an in-process ports.TicketDedup.
type TicketDedup struct {
	mu   sync.Mutex
	keys map[string]int64
}

func NewTicketDedup() *TicketDedup {
	return &TicketDedup{keys: make(map[string]int64)}
}

func (d *TicketDedup) Lookup(_ context.Context, reporterID, key string) (int64, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, ok := d.keys[dedupKey(reporterID, key)]
	return id, ok, nil
}

// Remember keeps the first ticket stored for a key, like SETNX.
func (d *TicketDedup) Remember(_ context.Context, reporterID, key string, ticketID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	k := dedupKey(reporterID, key)
	if _, taken := d.keys[k]; !taken {
		d.keys[k] = ticketID
	}
	return nil
}

func (d *TicketDedup) Replace(_ context.Context, reporterID, key string, ticketID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keys[dedupKey(reporterID, key)] = ticketID
	return nil
}

func dedupKey(reporterID, key string) string {
	return fmt.Sprintf("%s|%s", reporterID, key)
}
