package database

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutorpress/tutorpress-api/models"
)

func metaTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := MigrateWith(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func TestPostMeta_UpsertAndMissing(t *testing.T) {
	db := metaTestDB(t)
	postID := uuid.New()

	got, err := GetPostMeta(db, postID, models.MetaBenefits)
	if err != nil {
		t.Fatalf("missing meta: %v", err)
	}
	if got != "" {
		t.Fatalf("missing meta = %q, want empty", got)
	}

	if err := UpdatePostMeta(db, postID, models.MetaBenefits, "first"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := UpdatePostMeta(db, postID, models.MetaBenefits, "second"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err = GetPostMeta(db, postID, models.MetaBenefits)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got != "second" {
		t.Fatalf("meta = %q, want %q", got, "second")
	}

	var count int64
	if err := db.Model(&models.PostMeta{}).
		Where("post_id = ? AND meta_key = ?", postID, models.MetaBenefits).
		Count(&count).Error; err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("upsert produced %d rows, want 1", count)
	}
}

func TestUserMeta_Upsert(t *testing.T) {
	db := metaTestDB(t)
	userID := uuid.New()

	if err := UpdateUserMeta(db, userID, models.MetaJobTitle, "Lecturer"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := UpdateUserMeta(db, userID, models.MetaJobTitle, "Professor"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := GetUserMeta(db, userID, models.MetaJobTitle)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got != "Professor" {
		t.Fatalf("meta = %q, want %q", got, "Professor")
	}
}
