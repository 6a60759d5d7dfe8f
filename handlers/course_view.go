package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
	"github.com/tutorpress/tutorpress-api/utils"
)

// CourseCard is the course summary emitted inside a bundle's course list.
type CourseCard struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Permalink     string           `json:"permalink"`
	FeaturedImage string           `json:"featured_image"`
	Author        string           `json:"author"`
	DateCreated   string           `json:"date_created"`
	Price         string           `json:"price"`
	Duration      string           `json:"duration"`
	LessonCount   int64            `json:"lesson_count"`
	QuizCount     int64            `json:"quiz_count"`
	ResourceCount int              `json:"resource_count"`
	Instructors   []InstructorView `json:"instructors,omitempty"`
}

type InstructorView struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	UserLogin   string `json:"user_login"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role"`
	JobTitle    string `json:"job_title"`
}

// FormatPrice renders the display price for a course. Free price type wins
// outright; a positive sale price shows with the regular price struck
// through; otherwise a positive regular price shows alone; anything else
// is free.
func FormatPrice(priceType, regular, sale string) string {
	if priceType == models.PriceTypeFree {
		return "Free"
	}
	regularVal := parsePrice(regular)
	saleVal := parsePrice(sale)
	switch {
	case saleVal > 0 && regularVal > 0:
		return fmt.Sprintf("<del>$%.2f</del> $%.2f", regularVal, saleVal)
	case saleVal > 0:
		return fmt.Sprintf("$%.2f", saleVal)
	case regularVal > 0:
		return fmt.Sprintf("$%.2f", regularVal)
	default:
		return "Free"
	}
}

func parsePrice(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// courseIsFree reports whether a course may be bundled by anyone: either
// its price type says free, or it has no positive regular price.
func courseIsFree(db *gorm.DB, courseID uuid.UUID) bool {
	priceType, _ := database.GetPostMeta(db, courseID, models.MetaPriceType)
	if priceType == models.PriceTypeFree {
		return true
	}
	regular, _ := database.GetPostMeta(db, courseID, models.MetaRegularPrice)
	return parsePrice(regular) <= 0
}

func buildCourseCard(db *gorm.DB, course *models.Post, includeInstructors bool) CourseCard {
	priceType, _ := database.GetPostMeta(db, course.ID, models.MetaPriceType)
	regular, _ := database.GetPostMeta(db, course.ID, models.MetaRegularPrice)
	sale, _ := database.GetPostMeta(db, course.ID, models.MetaSalePrice)
	duration, _ := database.GetPostMeta(db, course.ID, models.MetaCourseDuration)
	thumbnail, _ := database.GetPostMeta(db, course.ID, models.MetaThumbnailURL)
	attachments, _ := database.GetPostMeta(db, course.ID, models.MetaAttachments)

	var authorName string
	var author models.User
	if err := db.First(&author, "id = ?", course.AuthorID).Error; err == nil {
		authorName = author.DisplayName
	}

	var lessonCount, quizCount int64
	db.Model(&models.Post{}).Where("parent_id = ? AND post_type = ?", course.ID, models.PostTypeLesson).Count(&lessonCount)
	db.Model(&models.Post{}).Where("parent_id = ? AND post_type = ?", course.ID, models.PostTypeQuiz).Count(&quizCount)

	card := CourseCard{
		ID:            course.ID.String(),
		Title:         course.Title,
		Permalink:     "/courses/" + course.Slug,
		FeaturedImage: thumbnail,
		Author:        authorName,
		DateCreated:   course.CreatedAt.Format(time.RFC3339),
		Price:         FormatPrice(priceType, regular, sale),
		Duration:      duration,
		LessonCount:   lessonCount,
		QuizCount:     quizCount,
		ResourceCount: len(utils.ParseIDList(attachments)),
	}

	// Resolving every instructor is a per-course fan-out, so callers opt in.
	if includeInstructors {
		card.Instructors = courseInstructors(db, course)
	}
	return card
}

// courseInstructors resolves the course author (tagged "author") followed
// by every co-instructor (tagged "instructor"). IDs that no longer resolve
// to a user are skipped rather than failing the whole list.
func courseInstructors(db *gorm.DB, course *models.Post) []InstructorView {
	views := make([]InstructorView, 0, 2)

	if view, ok := instructorView(db, course.AuthorID, "author"); ok {
		views = append(views, view)
	}

	raw, err := database.GetPostMeta(db, course.ID, models.MetaCoInstructors)
	if err != nil {
		return views
	}
	for _, id := range utils.ParseIDList(raw) {
		if view, ok := instructorView(db, id, "instructor"); ok {
			views = append(views, view)
		}
	}
	return views
}

func instructorView(db *gorm.DB, userID uuid.UUID, role string) (InstructorView, bool) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return InstructorView{}, false
	}
	jobTitle, _ := database.GetUserMeta(db, user.ID, models.MetaJobTitle)
	return InstructorView{
		ID:          user.ID.String(),
		DisplayName: user.DisplayName,
		Email:       user.Email,
		UserLogin:   user.UserLogin,
		AvatarURL:   user.AvatarURL,
		Role:        role,
		JobTitle:    jobTitle,
	}, true
}
