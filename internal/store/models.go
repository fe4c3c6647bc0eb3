package store

import "time"

// GORM models used for persistence.
type AdminModel struct {
	ID           string    `gorm:"primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (AdminModel) TableName() string { return "admins" }

type ShowcaseItemModel struct {
	ID         string    `gorm:"primaryKey"`
	Title      string    `gorm:"not null"`
	StorageKey string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

func (ShowcaseItemModel) TableName() string { return "showcase" }

type JournalEntryModel struct {
	ID        string    `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	Excerpt   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (JournalEntryModel) TableName() string { return "journal" }

type ContactMessageModel struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Message   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ContactMessageModel) TableName() string { return "messages" }
