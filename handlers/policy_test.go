package handlers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
)

func policyTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.MigrateWith(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestCanEditPosts(t *testing.T) {
	if !CanEditPosts(models.RoleAdmin) || !CanEditPosts(models.RoleInstructor) {
		t.Fatalf("admins and instructors must hold the general edit capability")
	}
	if CanEditPosts(models.RoleStudent) || CanEditPosts("") {
		t.Fatalf("students and anonymous roles must not")
	}
}

func TestCanEditPost(t *testing.T) {
	db := policyTestDB(t)

	author := uuid.New()
	coInstructor := uuid.New()
	somebody := uuid.New()

	course := &models.Post{ID: uuid.New(), PostType: models.PostTypeCourse, Title: "c", AuthorID: author}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}
	if err := database.UpdatePostMeta(db, course.ID, models.MetaCoInstructors, coInstructor.String()); err != nil {
		t.Fatalf("seed co-instructors: %v", err)
	}
	bundle := &models.Post{ID: uuid.New(), PostType: models.PostTypeBundle, Title: "b", AuthorID: author}
	if err := db.Create(bundle).Error; err != nil {
		t.Fatalf("seed bundle: %v", err)
	}

	if !CanEditPost(db, author, models.RoleInstructor, course) {
		t.Fatalf("author must edit their own course")
	}
	if !CanEditPost(db, coInstructor, models.RoleInstructor, course) {
		t.Fatalf("listed co-instructor must edit the course")
	}
	if CanEditPost(db, somebody, models.RoleInstructor, course) {
		t.Fatalf("unrelated instructor must not edit the course")
	}
	if !CanEditPost(db, somebody, models.RoleAdmin, course) {
		t.Fatalf("admin must edit anything")
	}

	// Co-instructor meta only applies to courses.
	if err := database.UpdatePostMeta(db, bundle.ID, models.MetaCoInstructors, coInstructor.String()); err != nil {
		t.Fatalf("seed bundle meta: %v", err)
	}
	if CanEditPost(db, coInstructor, models.RoleInstructor, bundle) {
		t.Fatalf("co-instructor meta must not grant bundle access")
	}
}
