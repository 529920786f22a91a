package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loandesk/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestRepo opens a throwaway in-memory database. Each test gets its own
// named shared-cache db so pooled connections see the same tables.
func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewRepo(gdb)
}

func seedUser(t *testing.T, r *Repo, username string) *models.User {
	t.Helper()
	u := &models.User{ID: uuid.NewString(), Username: username, DisplayName: username}
	if err := r.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedItem(t *testing.T, r *Repo, name string, unitCount int) *models.Item {
	t.Helper()
	it := &models.Item{ID: uuid.NewString(), Name: name}
	if err := r.CreateItem(context.Background(), it, nil); err != nil {
		t.Fatalf("seed item: %v", err)
	}
	for i := 0; i < unitCount; i++ {
		u := &models.Unit{
			ID:           uuid.NewString(),
			ItemID:       it.ID,
			SerialNumber: fmt.Sprintf("%s-%03d", name, i+1),
			Available:    true,
		}
		if err := r.CreateUnit(context.Background(), u); err != nil {
			t.Fatalf("seed unit: %v", err)
		}
	}
	return it
}

// hour returns a fixed test day (a Monday) at the given hour, UTC.
func hour(h int) time.Time {
	return time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC).Add(time.Duration(h) * time.Hour)
}
