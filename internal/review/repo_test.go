package review

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"codementor-backend/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(gormsqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &Session{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateUserThenFindByEmail(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hunter2"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Fatalf("expected user id to be set")
	}

	found, err := repo.FindUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if found.Name != "Ada" || found.Password != "hunter2" {
		t.Fatalf("unexpected user: name=%q password=%q", found.Name, found.Password)
	}

	if _, err := repo.FindUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unknown email, got %v", err)
	}
}

func TestFindUserByEmailReturnsFirstMatch(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	first := &models.User{Name: "First", Email: "dup@example.com", Password: "a"}
	second := &models.User{Name: "Second", Email: "dup@example.com", Password: "b"}
	if err := repo.CreateUser(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.CreateUser(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	found, err := repo.FindUserByEmail(ctx, "dup@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if found.ID != first.ID {
		t.Fatalf("expected first row (id=%d), got id=%d", first.ID, found.ID)
	}
}

func TestGetOrCreateSessionIdempotent(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	s1, created, err := repo.GetOrCreateSession(ctx, "01TESTSESSION0000000000000")
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}
	if !created {
		t.Fatalf("expected first call to create")
	}
	if s1.Messages == nil {
		t.Fatalf("expected fresh session to have a non-nil transcript")
	}
	if len(s1.Messages) != 0 {
		t.Fatalf("expected fresh session transcript to be empty, got %d", len(s1.Messages))
	}

	s2, created, err := repo.GetOrCreateSession(ctx, "01TESTSESSION0000000000000")
	if err != nil {
		t.Fatalf("second get-or-create: %v", err)
	}
	if created {
		t.Fatalf("expected second call to fetch, not create")
	}
	if s2.ID != s1.ID {
		t.Fatalf("expected same row, got id=%d and id=%d", s1.ID, s2.ID)
	}

	var count int64
	if err := repo.db.Model(&Session{}).Where("session_id = ?", "01TESTSESSION0000000000000").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}
}

func TestListSessionsForUserOrder(t *testing.T) {
	repo := NewRepo(openTestDB(t))
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com", Password: "x"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	tokens := []string{"SESS-A", "SESS-B", "SESS-C"}
	for _, tok := range tokens {
		s, _, err := repo.GetOrCreateSession(ctx, tok)
		if err != nil {
			t.Fatalf("get-or-create %s: %v", tok, err)
		}
		s.UserID = &u.ID
		if err := repo.SaveSession(ctx, s); err != nil {
			t.Fatalf("save %s: %v", tok, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	got, err := repo.ListSessionsForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(got))
	}
	if got[0].SessionID != "SESS-C" || got[2].SessionID != "SESS-A" {
		t.Fatalf("expected most recently updated first, got %s,%s,%s",
			got[0].SessionID, got[1].SessionID, got[2].SessionID)
	}

	// touching the oldest moves it to the front
	oldest, _, err := repo.GetOrCreateSession(ctx, "SESS-A")
	if err != nil {
		t.Fatalf("refetch: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := repo.SaveSession(ctx, oldest); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err = repo.ListSessionsForUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if got[0].SessionID != "SESS-A" {
		t.Fatalf("expected resaved session first, got %s", got[0].SessionID)
	}
	for i := 1; i < len(got); i++ {
		if got[i].UpdatedAt.After(got[i-1].UpdatedAt) {
			t.Fatalf("updated_at not non-increasing at index %d", i)
		}
	}
}
