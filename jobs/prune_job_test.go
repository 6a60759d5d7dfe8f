package jobs

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
	"github.com/tutorpress/tutorpress-api/utils"
)

func pruneTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := database.MigrateWith(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	return db
}

func seedPost(t *testing.T, db *gorm.DB, postType, title string) *models.Post {
	t.Helper()
	author := &models.User{DisplayName: "Author", Email: uuid.NewString() + "@test.dev", Role: models.RoleInstructor}
	if err := db.Create(author).Error; err != nil {
		t.Fatalf("seeding author: %v", err)
	}
	post := &models.Post{PostType: postType, Title: title, Slug: uuid.NewString(), AuthorID: author.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("seeding post: %v", err)
	}
	return post
}

func TestPruneBundleCourseLinks(t *testing.T) {
	db := pruneTestDB(t)

	alive := seedPost(t, db, models.PostTypeCourse, "alive")
	bundle := seedPost(t, db, models.PostTypeBundle, "pack")
	clean := seedPost(t, db, models.PostTypeBundle, "clean-pack")
	stale := uuid.New()

	list := utils.JoinIDList([]uuid.UUID{alive.ID, stale})
	if err := database.UpdatePostMeta(db, bundle.ID, models.MetaBundleCourseIDs, list); err != nil {
		t.Fatalf("seeding bundle meta: %v", err)
	}
	cleanList := utils.JoinIDList([]uuid.UUID{alive.ID})
	if err := database.UpdatePostMeta(db, clean.ID, models.MetaBundleCourseIDs, cleanList); err != nil {
		t.Fatalf("seeding clean bundle meta: %v", err)
	}

	if err := pruneBundleCourseLinks(db); err != nil {
		t.Fatalf("prune: %v", err)
	}

	got, err := database.GetPostMeta(db, bundle.ID, models.MetaBundleCourseIDs)
	if err != nil {
		t.Fatalf("reading pruned meta: %v", err)
	}
	if got != alive.ID.String() {
		t.Fatalf("pruned list = %q, want only %s", got, alive.ID)
	}

	got, err = database.GetPostMeta(db, clean.ID, models.MetaBundleCourseIDs)
	if err != nil {
		t.Fatalf("reading clean meta: %v", err)
	}
	if got != cleanList {
		t.Fatalf("clean list changed: %q", got)
	}
}
