package chathub

import (
	"sort"
	"sync"
)

// PresenceTracker owns the process-wide table of online identities. It maps
// an email to the set of its live connection ids, so the same user in two
// browser tabs stays online until the last tab disconnects. State lives for
// the lifetime of the process only and is never persisted.
type PresenceTracker struct {
	mu     sync.Mutex
	online map[string]map[string]struct{}
}

// NewPresenceTracker creates an empty tracker.
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{online: make(map[string]map[string]struct{})}
}

// Register adds the connection handle to the identity's set, creating the
// set on first connection.
func (p *PresenceTracker) Register(email, connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.online[email] == nil {
		p.online[email] = make(map[string]struct{})
	}
	p.online[email][connID] = struct{}{}
}

// Unregister removes the connection handle; when the identity's set empties
// the identity is dropped entirely (it is then offline).
func (p *PresenceTracker) Unregister(email, connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	set, ok := p.online[email]
	if !ok {
		return
	}
	delete(set, connID)
	if len(set) == 0 {
		delete(p.online, email)
	}
}

// IsOnline reports whether the identity has at least one live connection.
func (p *PresenceTracker) IsOnline(email string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.online[email]) > 0
}

// Snapshot returns the sorted list of online identity keys. Each identity
// appears once no matter how many handles it holds.
func (p *PresenceTracker) Snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	emails := make([]string, 0, len(p.online))
	for email := range p.online {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}
