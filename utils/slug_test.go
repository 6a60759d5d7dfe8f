package utils

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tutorpress/tutorpress-api/models"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Go Fundamentals", "go-fundamentals"},
		{"  Unicode & Symbols!  ", "unicode-symbols"},
		{"---", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestUniquePostSlug(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Post{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	slug, err := UniquePostSlug(db, "My Bundle")
	if err != nil {
		t.Fatalf("UniquePostSlug: %v", err)
	}
	if slug != "my-bundle" {
		t.Fatalf("slug = %q, want my-bundle", slug)
	}

	if err := db.Create(&models.Post{PostType: models.PostTypeBundle, Title: "My Bundle", Slug: "my-bundle"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	slug, err = UniquePostSlug(db, "My Bundle")
	if err != nil {
		t.Fatalf("UniquePostSlug: %v", err)
	}
	if !strings.HasPrefix(slug, "my-bundle-") || slug == "my-bundle" {
		t.Fatalf("collision slug = %q, want suffixed variant", slug)
	}
}
