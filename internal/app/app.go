package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"livelong/internal/auth"
	"livelong/internal/domain"
	"livelong/internal/storage"
	"livelong/internal/store"
	"livelong/internal/util"
)

const (
	defaultPreviewSize      = 3
	defaultJournalHomeLimit = 3
	showcaseKeyPrefix       = "showcase"
)

var defaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	SessionTTL    time.Duration

	MinioEndpoint      string
	MinioAccessKey     string
	MinioSecretKey     string
	MinioBucket        string
	MinioUseSSL        bool
	MinioPublicBaseURL string

	AdminEmail    string
	AdminPassword string

	PreviewSize            int
	AllowedImageExtensions []string

	// Test seams: when set, they take precedence over the URL/addr fields.
	Store    store.Store
	Sessions store.SessionStore
	Objects  storage.ObjectStore
}

// App wires content storage, object storage, and admin sessions into the
// site's workflows.
type App struct {
	store       store.Store
	sessions    store.SessionStore
	objects     storage.ObjectStore
	previewSize int
	imageExts   map[string]struct{}
}

// New constructs the application and seeds the admin account when needed.
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	objects := cfg.Objects
	if objects == nil {
		var err error
		objects, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL, cfg.MinioPublicBaseURL)
		if err != nil {
			return nil, fmt.Errorf("init object store: %w", err)
		}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		switch {
		case cfg.RedisAddr != "":
			sessions = store.NewRedisSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.SessionTTL)
		case cfg.JWTSecret != "":
			sessions = store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL)
		default:
			return nil, fmt.Errorf("session store required (redisAddr or jwtSecret)")
		}
	}

	previewSize := cfg.PreviewSize
	if previewSize <= 0 {
		previewSize = defaultPreviewSize
	}
	exts := cfg.AllowedImageExtensions
	if len(exts) == 0 {
		exts = defaultImageExtensions
	}
	imageExts := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		imageExts[ext] = struct{}{}
	}

	a := &App{
		store:       dataStore,
		sessions:    sessions,
		objects:     objects,
		previewSize: previewSize,
		imageExts:   imageExts,
	}
	if err := a.seedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}
	return a, nil
}

// seedAdmin creates the dashboard account from config when it is absent.
func (a *App) seedAdmin(email, password string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil
	}
	_, exists, err := a.store.GetAdminByEmail(email)
	if err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if exists {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := domain.Admin{
		ID:           util.NewID(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.SaveAdmin(admin); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}
	slog.Info("admin account seeded", "email", email)
	return nil
}

// Login validates admin credentials and issues a session token.
func (a *App) Login(email, password string) (domain.Admin, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return domain.Admin{}, "", ErrEmailPasswordRequired
	}
	admin, ok, err := a.store.GetAdminByEmail(email)
	if err != nil {
		return domain.Admin{}, "", fmt.Errorf("fetch admin: %w", err)
	}
	if !ok || !auth.CheckPassword(password, admin.PasswordHash) {
		return domain.Admin{}, "", ErrInvalidCredentials
	}
	token, err := a.sessions.NewSession(admin.ID)
	if err != nil {
		return domain.Admin{}, "", fmt.Errorf("issue session: %w", err)
	}
	return admin, token, nil
}

// Logout revokes a session token.
func (a *App) Logout(token string) error {
	return a.sessions.DeleteSession(token)
}

// AdminFromToken resolves a session token to the admin it was issued for.
func (a *App) AdminFromToken(token string) (domain.Admin, bool) {
	id, ok, err := a.sessions.GetAdminIDByToken(token)
	if err != nil || !ok {
		return domain.Admin{}, false
	}
	admin, found, err := a.store.GetAdminByID(id)
	if err != nil || !found {
		return domain.Admin{}, false
	}
	return admin, true
}

// UploadShowcaseItem stores the image under a collision-resistant key, then
// inserts the showcase row referencing that canonical key. A row-insert
// failure triggers best-effort object cleanup; the workflow is not
// transactional and a failed cleanup can leave an orphaned blob.
func (a *App) UploadShowcaseItem(ctx context.Context, title, filename string, r io.Reader, size int64) (domain.ShowcaseItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.ShowcaseItem{}, ErrTitleRequired
	}
	if filename == "" || r == nil {
		return domain.ShowcaseItem{}, ErrImageRequired
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := a.imageExts[ext]; !ok {
		return domain.ShowcaseItem{}, ErrUnsupportedImageType
	}

	id := util.NewID()
	key := buildStorageKey(id, filename)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := a.objects.Put(ctx, key, r, size, contentType); err != nil {
		return domain.ShowcaseItem{}, fmt.Errorf("%w: %v", ErrImageUploadFailed, err)
	}

	item := domain.ShowcaseItem{
		ID:         id,
		Title:      title,
		StorageKey: key,
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.store.SaveShowcaseItem(item); err != nil {
		if cleanupErr := a.objects.Delete(ctx, key); cleanupErr != nil {
			slog.Warn("orphaned showcase object left behind", "key", key, "err", cleanupErr)
		}
		return domain.ShowcaseItem{}, fmt.Errorf("%w: %v", ErrShowcaseSaveFailed, err)
	}
	item.ImageURL = a.objects.PublicURL(key)
	return item, nil
}

// ListShowcase returns all showcase items, newest first, with display URLs
// derived from the canonical storage key.
func (a *App) ListShowcase() ([]domain.ShowcaseItem, error) {
	items, err := a.store.ListShowcaseItems()
	if err != nil {
		return nil, fmt.Errorf("list showcase: %w", err)
	}
	for i := range items {
		items[i].ImageURL = a.objects.PublicURL(items[i].StorageKey)
	}
	return items, nil
}

// PreviewShowcase returns a pseudo-random sample for the landing page. Every
// call reshuffles; fewer stored items than the preview size returns them all.
func (a *App) PreviewShowcase() ([]domain.ShowcaseItem, error) {
	items, err := a.ListShowcase()
	if err != nil {
		return nil, err
	}
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	if len(items) > a.previewSize {
		items = items[:a.previewSize]
	}
	return items, nil
}

// AddJournalEntry validates, derives the excerpt, and inserts the entry.
func (a *App) AddJournalEntry(title, content string) (domain.JournalEntry, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.JournalEntry{}, ErrTitleRequired
	}
	if strings.TrimSpace(content) == "" {
		return domain.JournalEntry{}, ErrContentRequired
	}
	entry := domain.JournalEntry{
		ID:        util.NewID(),
		Title:     title,
		Content:   content,
		Excerpt:   makeExcerpt(content),
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveJournalEntry(entry); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("save journal entry: %w", err)
	}
	return entry, nil
}

// ListJournal returns all entries, newest first.
func (a *App) ListJournal() ([]domain.JournalEntry, error) {
	entries, err := a.store.ListJournalEntries()
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	return entries, nil
}

// GetJournalEntry returns one entry by ID.
func (a *App) GetJournalEntry(id string) (domain.JournalEntry, error) {
	entry, ok, err := a.store.GetJournalEntry(id)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("get journal entry: %w", err)
	}
	if !ok {
		return domain.JournalEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

// SubmitContactMessage stores a visitor message after validating that all
// three fields are present.
func (a *App) SubmitContactMessage(name, email, message string) (domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)
	if name == "" || email == "" || message == "" {
		return domain.ContactMessage{}, ErrContactFieldsRequired
	}
	msg := domain.ContactMessage{
		ID:        util.NewID(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.store.SaveContactMessage(msg); err != nil {
		return domain.ContactMessage{}, fmt.Errorf("save contact message: %w", err)
	}
	return msg, nil
}

// ListContactMessages returns all messages, newest first.
func (a *App) ListContactMessages() ([]domain.ContactMessage, error) {
	msgs, err := a.store.ListContactMessages()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return msgs, nil
}

// DeleteContactMessage removes a message and returns the re-fetched remaining
// list, so the dashboard always reconciles against stored state instead of
// trusting an optimistic local copy.
func (a *App) DeleteContactMessage(id string) ([]domain.ContactMessage, error) {
	deleted, err := a.store.DeleteContactMessage(id)
	if err != nil {
		return nil, fmt.Errorf("delete message: %w", err)
	}
	if !deleted {
		return nil, ErrMessageNotFound
	}
	return a.ListContactMessages()
}

// HomeContent is the aggregate landing-page payload.
type HomeContent struct {
	Showcase []domain.ShowcaseItem `json:"showcase"`
	Journal  []domain.JournalEntry `json:"journal"`
}

// HomeContent fetches the showcase preview and the latest journal entries
// concurrently.
func (a *App) HomeContent() (HomeContent, error) {
	var content HomeContent
	var g errgroup.Group
	g.Go(func() error {
		preview, err := a.PreviewShowcase()
		if err != nil {
			return err
		}
		content.Showcase = preview
		return nil
	})
	g.Go(func() error {
		entries, err := a.ListJournal()
		if err != nil {
			return err
		}
		if len(entries) > defaultJournalHomeLimit {
			entries = entries[:defaultJournalHomeLimit]
		}
		content.Journal = entries
		return nil
	})
	if err := g.Wait(); err != nil {
		return HomeContent{}, err
	}
	return content, nil
}

// buildStorageKey derives the canonical object key for an upload: a unique
// prefix plus the sanitized original name, so display URLs never collide.
func buildStorageKey(id, filename string) string {
	name := sanitizeFilename(filepath.Base(filename))
	if name == "" {
		name = "image"
	}
	return path.Join(showcaseKeyPrefix, id+"-"+name)
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '_' {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "._")
}
