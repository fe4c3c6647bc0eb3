package store

import (
	"testing"
	"time"

	"livelong/internal/domain"
)

func TestMemoryStoreListsNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		if err := s.SaveJournalEntry(domain.JournalEntry{
			ID:        id,
			Title:     "entry " + id,
			Content:   "content",
			Excerpt:   "content",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}); err != nil {
			t.Fatalf("save entry: %v", err)
		}
	}
	entries, err := s.ListJournalEntries()
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	if entries[0].ID != "c" || entries[1].ID != "b" || entries[2].ID != "a" {
		t.Fatalf("entries not newest first: %v, %v, %v", entries[0].ID, entries[1].ID, entries[2].ID)
	}
}

func TestMemoryStoreDeleteContactMessage(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now().UTC()
	for _, id := range []string{"m1", "m2"} {
		if err := s.SaveContactMessage(domain.ContactMessage{
			ID: id, Name: "Ada", Email: "a@x.com", Message: "Hello", CreatedAt: now,
		}); err != nil {
			t.Fatalf("save message: %v", err)
		}
	}

	deleted, err := s.DeleteContactMessage("m1")
	if err != nil || !deleted {
		t.Fatalf("delete m1 = (%v, %v), want (true, nil)", deleted, err)
	}
	msgs, _ := s.ListContactMessages()
	if len(msgs) != 1 || msgs[0].ID != "m2" {
		t.Fatalf("expected only m2 to remain, got %v", msgs)
	}

	deleted, err = s.DeleteContactMessage("missing")
	if err != nil || deleted {
		t.Fatalf("delete missing = (%v, %v), want (false, nil)", deleted, err)
	}
	msgs, _ = s.ListContactMessages()
	if len(msgs) != 1 {
		t.Fatalf("list should be unchanged after deleting a missing id")
	}
}

func TestMemoryStoreAdminLookup(t *testing.T) {
	s := NewMemoryStore()
	admin := domain.Admin{ID: "admin-1", Email: "admin@livelong.site", PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	if err := s.SaveAdmin(admin); err != nil {
		t.Fatalf("save admin: %v", err)
	}
	got, ok, err := s.GetAdminByEmail("admin@livelong.site")
	if err != nil || !ok || got.ID != "admin-1" {
		t.Fatalf("GetAdminByEmail = (%v, %v, %v)", got, ok, err)
	}
	if _, ok, _ := s.GetAdminByEmail("nobody@livelong.site"); ok {
		t.Fatalf("unknown email should not resolve")
	}
}
