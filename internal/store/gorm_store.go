package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"livelong/internal/domain"
)

const migrateLockID int64 = 54815481

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations under an advisory lock
// so concurrent instances do not race on schema changes.
func NewGormStore(dsn string) (*GormStore, error) {
	gormLog := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := withMigrationLock(db, func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&AdminModel{}, &ShowcaseItemModel{}, &JournalEntryModel{}, &ContactMessageModel{}); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func withMigrationLock(db *gorm.DB, fn func(*gorm.DB) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("open sql conn: %w", err)
	}
	defer conn.Close()
	if err := execAdvisory(ctx, conn, "SELECT pg_advisory_lock($1)"); err != nil {
		return fmt.Errorf("acquire migrate lock: %w", err)
	}
	defer func() {
		_ = execAdvisory(ctx, conn, "SELECT pg_advisory_unlock($1)")
	}()
	return fn(db)
}

func execAdvisory(ctx context.Context, conn *sql.Conn, query string) error {
	_, err := conn.ExecContext(ctx, query, migrateLockID)
	return err
}

// SaveAdmin registers or updates an admin account.
func (s *GormStore) SaveAdmin(a domain.Admin) error {
	model := adminToModel(a)
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "password_hash"}),
	}).Create(&model).Error
}

// GetAdminByEmail looks up an admin by email.
func (s *GormStore) GetAdminByEmail(email string) (domain.Admin, bool, error) {
	var model AdminModel
	if err := s.db.Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Admin{}, false, nil
		}
		return domain.Admin{}, false, err
	}
	return adminFromModel(model), true, nil
}

// GetAdminByID returns an admin by ID.
func (s *GormStore) GetAdminByID(id string) (domain.Admin, bool, error) {
	var model AdminModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Admin{}, false, nil
		}
		return domain.Admin{}, false, err
	}
	return adminFromModel(model), true, nil
}

// SaveShowcaseItem stores a showcase row. Items are never updated afterwards.
func (s *GormStore) SaveShowcaseItem(item domain.ShowcaseItem) error {
	model := showcaseToModel(item)
	return s.db.Create(&model).Error
}

// ListShowcaseItems returns all showcase items, newest first.
func (s *GormStore) ListShowcaseItems() ([]domain.ShowcaseItem, error) {
	var models []ShowcaseItemModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	items := make([]domain.ShowcaseItem, 0, len(models))
	for _, m := range models {
		items = append(items, showcaseFromModel(m))
	}
	return items, nil
}

// SaveJournalEntry stores a journal row. Titles are not unique.
func (s *GormStore) SaveJournalEntry(entry domain.JournalEntry) error {
	model := journalToModel(entry)
	return s.db.Create(&model).Error
}

// ListJournalEntries returns all entries, newest first.
func (s *GormStore) ListJournalEntries() ([]domain.JournalEntry, error) {
	var models []JournalEntryModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	entries := make([]domain.JournalEntry, 0, len(models))
	for _, m := range models {
		entries = append(entries, journalFromModel(m))
	}
	return entries, nil
}

// GetJournalEntry retrieves one entry.
func (s *GormStore) GetJournalEntry(id string) (domain.JournalEntry, bool, error) {
	var model JournalEntryModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.JournalEntry{}, false, nil
		}
		return domain.JournalEntry{}, false, err
	}
	return journalFromModel(model), true, nil
}

// SaveContactMessage stores a visitor message.
func (s *GormStore) SaveContactMessage(msg domain.ContactMessage) error {
	model := messageToModel(msg)
	return s.db.Create(&model).Error
}

// ListContactMessages returns all messages, newest first.
func (s *GormStore) ListContactMessages() ([]domain.ContactMessage, error) {
	var models []ContactMessageModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	msgs := make([]domain.ContactMessage, 0, len(models))
	for _, m := range models {
		msgs = append(msgs, messageFromModel(m))
	}
	return msgs, nil
}

// DeleteContactMessage removes a message and reports whether a row existed.
func (s *GormStore) DeleteContactMessage(id string) (bool, error) {
	res := s.db.Delete(&ContactMessageModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func adminToModel(a domain.Admin) AdminModel {
	return AdminModel{
		ID:           a.ID,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		CreatedAt:    a.CreatedAt,
	}
}

func adminFromModel(m AdminModel) domain.Admin {
	return domain.Admin{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

func showcaseToModel(item domain.ShowcaseItem) ShowcaseItemModel {
	return ShowcaseItemModel{
		ID:         item.ID,
		Title:      item.Title,
		StorageKey: item.StorageKey,
		CreatedAt:  item.CreatedAt,
	}
}

func showcaseFromModel(m ShowcaseItemModel) domain.ShowcaseItem {
	return domain.ShowcaseItem{
		ID:         m.ID,
		Title:      m.Title,
		StorageKey: m.StorageKey,
		CreatedAt:  m.CreatedAt,
	}
}

func journalToModel(e domain.JournalEntry) JournalEntryModel {
	return JournalEntryModel{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		Excerpt:   e.Excerpt,
		CreatedAt: e.CreatedAt,
	}
}

func journalFromModel(m JournalEntryModel) domain.JournalEntry {
	return domain.JournalEntry{
		ID:        m.ID,
		Title:     m.Title,
		Content:   m.Content,
		Excerpt:   m.Excerpt,
		CreatedAt: m.CreatedAt,
	}
}

func messageToModel(msg domain.ContactMessage) ContactMessageModel {
	return ContactMessageModel{
		ID:        msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}

func messageFromModel(m ContactMessageModel) domain.ContactMessage {
	return domain.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
