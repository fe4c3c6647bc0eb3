package store

import (
	"sort"
	"sync"

	"livelong/internal/domain"
)

// MemoryStore keeps all content in-process. It backs tests and mirrors the
// newest-first ordering of the Postgres store.
type MemoryStore struct {
	mu       sync.RWMutex
	admins   map[string]domain.Admin
	emails   map[string]string // email -> admin ID
	showcase map[string]domain.ShowcaseItem
	journal  map[string]domain.JournalEntry
	messages map[string]domain.ContactMessage
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:   make(map[string]domain.Admin),
		emails:   make(map[string]string),
		showcase: make(map[string]domain.ShowcaseItem),
		journal:  make(map[string]domain.JournalEntry),
		messages: make(map[string]domain.ContactMessage),
	}
}

// SaveAdmin registers or replaces an admin account.
func (m *MemoryStore) SaveAdmin(a domain.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.admins[a.ID] = a
	m.emails[a.Email] = a.ID
	return nil
}

// GetAdminByEmail looks up an admin by email.
func (m *MemoryStore) GetAdminByEmail(email string) (domain.Admin, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.emails[email]
	if !ok {
		return domain.Admin{}, false, nil
	}
	admin, ok := m.admins[id]
	return admin, ok, nil
}

// GetAdminByID returns an admin by ID.
func (m *MemoryStore) GetAdminByID(id string) (domain.Admin, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	admin, ok := m.admins[id]
	return admin, ok, nil
}

// SaveShowcaseItem stores a showcase item.
func (m *MemoryStore) SaveShowcaseItem(item domain.ShowcaseItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showcase[item.ID] = item
	return nil
}

// ListShowcaseItems returns showcase items, newest first.
func (m *MemoryStore) ListShowcaseItems() ([]domain.ShowcaseItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]domain.ShowcaseItem, 0, len(m.showcase))
	for _, item := range m.showcase {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// SaveJournalEntry stores a journal entry.
func (m *MemoryStore) SaveJournalEntry(entry domain.JournalEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.journal[entry.ID] = entry
	return nil
}

// ListJournalEntries returns entries, newest first.
func (m *MemoryStore) ListJournalEntries() ([]domain.JournalEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]domain.JournalEntry, 0, len(m.journal))
	for _, entry := range m.journal {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID > entries[j].ID
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

// GetJournalEntry retrieves one entry by ID.
func (m *MemoryStore) GetJournalEntry(id string) (domain.JournalEntry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.journal[id]
	return entry, ok, nil
}

// SaveContactMessage stores a visitor message.
func (m *MemoryStore) SaveContactMessage(msg domain.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.ID] = msg
	return nil
}

// ListContactMessages returns messages, newest first.
func (m *MemoryStore) ListContactMessages() ([]domain.ContactMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := make([]domain.ContactMessage, 0, len(m.messages))
	for _, msg := range m.messages {
		msgs = append(msgs, msg)
	}
	sort.Slice(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Equal(msgs[j].CreatedAt) {
			return msgs[i].ID > msgs[j].ID
		}
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})
	return msgs, nil
}

// DeleteContactMessage removes a message and reports whether it existed.
func (m *MemoryStore) DeleteContactMessage(id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.messages[id]; !ok {
		return false, nil
	}
	delete(m.messages, id)
	return true, nil
}
