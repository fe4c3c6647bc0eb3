package store

import "livelong/internal/domain"

// Store defines persistence operations for admins, showcase items, journal
// entries, and contact messages.
type Store interface {
	// admins
	SaveAdmin(domain.Admin) error
	GetAdminByEmail(email string) (domain.Admin, bool, error)
	GetAdminByID(id string) (domain.Admin, bool, error)

	// showcase
	SaveShowcaseItem(domain.ShowcaseItem) error
	ListShowcaseItems() ([]domain.ShowcaseItem, error)

	// journal
	SaveJournalEntry(domain.JournalEntry) error
	ListJournalEntries() ([]domain.JournalEntry, error)
	GetJournalEntry(id string) (domain.JournalEntry, bool, error)

	// contact messages
	SaveContactMessage(domain.ContactMessage) error
	ListContactMessages() ([]domain.ContactMessage, error)
	DeleteContactMessage(id string) (bool, error)
}

// SessionStore persists admin session tokens.
type SessionStore interface {
	NewSession(adminID string) (string, error)
	GetAdminIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}
