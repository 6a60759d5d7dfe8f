package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
	"github.com/tutorpress/tutorpress-api/utils"
)

// Capability checks shared by every endpoint. Two levels exist: the
// general edit-posts capability, and edit capability on one specific post.

func requestUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	raw, _ := claims["user_id"].(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func requestRole(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	role, _ := claims["role"].(string)
	return role
}

// CanEditPosts is the general capability gate: admins and instructors may
// edit posts, students may not.
func CanEditPosts(role string) bool {
	return role == models.RoleAdmin || role == models.RoleInstructor
}

// CanEditPost grants edit capability on a specific post: admins always,
// the author always, and for courses any listed co-instructor.
func CanEditPost(db *gorm.DB, userID uuid.UUID, role string, post *models.Post) bool {
	if role == models.RoleAdmin {
		return true
	}
	if post.AuthorID == userID {
		return true
	}
	if post.PostType == models.PostTypeCourse {
		raw, err := database.GetPostMeta(db, post.ID, models.MetaCoInstructors)
		if err == nil {
			for _, id := range utils.ParseIDList(raw) {
				if id == userID {
					return true
				}
			}
		}
	}
	return false
}
