package utils

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tutorpress/tutorpress-api/models"
)

const slugSuffixLength = 6
const letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses everything that is not
// alphanumeric into single dashes.
func Slugify(title string) string {
	slug := nonSlugRe.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// UniquePostSlug derives a slug from the title, appending a short random
// suffix until no other post claims it.
func UniquePostSlug(db *gorm.DB, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "post"
	}

	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))
	slug := base
	for {
		var count int64
		if err := db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}

		b := make([]byte, slugSuffixLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		slug = base + "-" + string(b)
	}
}
