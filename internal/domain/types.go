package domain

import "time"

// Admin is the account that owns the content-management dashboard.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ShowcaseItem is a portfolio image shown in the gallery and landing preview.
// StorageKey is the canonical object key; ImageURL is derived from it at read
// time and never persisted.
type ShowcaseItem struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StorageKey string    `json:"-"`
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
}

// JournalEntry is a blog-style article with a derived excerpt.
type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactMessage is a visitor submission from the public contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
