package handlers

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
	"github.com/tutorpress/tutorpress-api/utils"
)

type BundleHandler struct {
	DB *gorm.DB
}

func NewBundleHandler(db *gorm.DB) *BundleHandler {
	return &BundleHandler{DB: db}
}

type CreateBundleRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

type UpdateBundleRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type UpdateBundleCoursesRequest struct {
	CourseIDs *[]string `json:"course_ids"`
}

type SaveBenefitsRequest struct {
	BundleID string `json:"bundle_id" validate:"required"`
	Benefits string `json:"benefits"`
}

func (h *BundleHandler) ListBundles(c *fiber.Ctx) error {
	if !CanEditPosts(requestRole(c)) {
		return utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit posts")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(c.Query("per_page", "10"))
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	search := strings.TrimSpace(c.Query("search"))
	offset := (page - 1) * perPage

	query := h.DB.Model(&models.Post{}).
		Where("post_type = ? AND status = ?", models.PostTypeBundle, models.StatusPublish)
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to count bundles")
	}

	var bundles []models.Post
	if err := query.Order("created_at desc").Offset(offset).Limit(perPage).Find(&bundles).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to list bundles")
	}

	items := make([]fiber.Map, 0, len(bundles))
	for _, bundle := range bundles {
		items = append(items, fiber.Map{
			"id":    bundle.ID.String(),
			"title": bundle.Title,
			"slug":  bundle.Slug,
		})
	}

	return utils.Success(c, "Bundles retrieved", fiber.Map{
		"bundles":     items,
		"total":       total,
		"total_pages": int(math.Ceil(float64(total) / float64(perPage))),
		"page":        page,
	})
}

func (h *BundleHandler) CreateBundle(c *fiber.Ctx) error {
	role := requestRole(c)
	if !CanEditPosts(role) {
		return utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit posts")
	}
	userID, ok := requestUserID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authentication token")
	}

	var req CreateBundleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, err.Error())
	}

	title := utils.SanitizeText(req.Title)
	if title == "" {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Title must not be empty")
	}
	slug, err := utils.UniquePostSlug(h.DB, title)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to derive bundle slug")
	}

	bundle := models.Post{
		PostType: models.PostTypeBundle,
		Title:    title,
		Content:  utils.SanitizeHTML(req.Content),
		Slug:     slug,
		Status:   models.StatusPublish,
		AuthorID: userID,
	}
	if err := h.DB.Create(&bundle).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to create bundle")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Bundle created",
		"data":    bundleView(&bundle),
	})
}

func (h *BundleHandler) GetBundle(c *fiber.Ctx) error {
	bundle, err := h.guardBundle(c)
	if bundle == nil {
		return err
	}
	return utils.Success(c, "Bundle retrieved", bundleView(bundle))
}

func (h *BundleHandler) UpdateBundle(c *fiber.Ctx) error {
	bundle, err := h.guardBundle(c)
	if bundle == nil {
		return err
	}

	var req UpdateBundleRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Cannot parse JSON")
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = utils.SanitizeText(*req.Title)
	}
	if req.Content != nil {
		updates["content"] = utils.SanitizeHTML(*req.Content)
	}
	if len(updates) > 0 {
		if err := h.DB.Model(bundle).Updates(updates).Error; err != nil {
			return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to update bundle")
		}
	}

	var refreshed models.Post
	if err := h.DB.First(&refreshed, "id = ?", bundle.ID).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to reload bundle")
	}
	return utils.Success(c, "Bundle updated", bundleView(&refreshed))
}

func (h *BundleHandler) GetBundleCourses(c *fiber.Ctx) error {
	bundle, err := h.guardBundle(c)
	if bundle == nil {
		return err
	}

	includeInstructors := queryFlag(c, "include_instructors", "includeInstructors")
	cards, err := h.linkedCourseCards(bundle.ID, includeInstructors)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to load bundle courses")
	}
	return utils.Success(c, "Bundle courses retrieved", fiber.Map{
		"courses":       cards,
		"total_courses": len(cards),
	})
}

func (h *BundleHandler) UpdateBundleCourses(c *fiber.Ctx) error {
	bundle, err := h.guardBundle(c)
	if bundle == nil {
		return err
	}

	var req UpdateBundleCoursesRequest
	if err := c.BodyParser(&req); err != nil || req.CourseIDs == nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "course_ids must be an array")
	}

	userID, ok := requestUserID(c)
	if !ok {
		return utils.Error(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authentication token")
	}
	role := requestRole(c)

	accepted := make([]uuid.UUID, 0, len(*req.CourseIDs))
	seen := make(map[uuid.UUID]bool, len(*req.CourseIDs))
	for _, raw := range *req.CourseIDs {
		courseID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil || seen[courseID] {
			continue
		}

		var course models.Post
		if err := h.DB.First(&course, "id = ? AND post_type = ?", courseID, models.PostTypeCourse).Error; err != nil {
			continue
		}

		// A course may be bundled by its author, by anyone when it is
		// free, or by an admin regardless.
		if course.AuthorID != userID && role != models.RoleAdmin && !courseIsFree(h.DB, course.ID) {
			continue
		}

		seen[courseID] = true
		accepted = append(accepted, courseID)
	}

	if err := database.UpdatePostMeta(h.DB, bundle.ID, models.MetaBundleCourseIDs, utils.JoinIDList(accepted)); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to save bundle courses")
	}

	cards, err := h.linkedCourseCards(bundle.ID, false)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to load bundle courses")
	}
	return utils.Success(c, "Bundle courses updated", fiber.Map{
		"courses":       cards,
		"total_courses": len(cards),
	})
}

func (h *BundleHandler) GetBundleBenefits(c *fiber.Ctx) error {
	bundle, err := h.guardBundle(c)
	if bundle == nil {
		return err
	}

	raw, err := database.GetPostMeta(h.DB, bundle.ID, models.MetaBenefits)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to read benefits")
	}
	return utils.Success(c, "Bundle benefits retrieved", fiber.Map{
		"bundle_id": bundle.ID.String(),
		"benefits":  coerceBenefits(raw),
	})
}

func (h *BundleHandler) SaveBundleBenefits(c *fiber.Ctx) error {
	var req SaveBenefitsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, err.Error())
	}

	bundleID, err := uuid.Parse(req.BundleID)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid bundle ID")
	}

	var bundle models.Post
	if err := h.DB.First(&bundle, "id = ? AND post_type = ?", bundleID, models.PostTypeBundle).Error; err != nil {
		return utils.Error(c, fiber.StatusNotFound, utils.CodeNotFound, "Bundle not found")
	}
	if ok, resp := h.authorize(c, &bundle); !ok {
		return resp
	}

	benefits := utils.SanitizeMultiline(req.Benefits)
	if err := database.UpdatePostMeta(h.DB, bundle.ID, models.MetaBenefits, benefits); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to save benefits")
	}
	return utils.Success(c, "Bundle benefits saved", fiber.Map{
		"bundle_id": bundle.ID.String(),
		"benefits":  benefits,
	})
}

func (h *BundleHandler) GetBundleInstructors(c *fiber.Ctx) error {
	bundle, err := h.guardBundle(c)
	if bundle == nil {
		return err
	}

	courses, err := h.linkedCourses(bundle.ID)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to load bundle courses")
	}

	// First occurrence wins when the same user teaches several of the
	// bundle's courses.
	seen := make(map[string]bool)
	instructors := make([]InstructorView, 0)
	for i := range courses {
		for _, view := range courseInstructors(h.DB, &courses[i]) {
			if seen[view.ID] {
				continue
			}
			seen[view.ID] = true
			instructors = append(instructors, view)
		}
	}

	return utils.Success(c, "Bundle instructors retrieved", fiber.Map{
		"instructors":       instructors,
		"total_instructors": len(instructors),
		"total_courses":     len(courses),
	})
}

// guardBundle resolves the :id route parameter to a bundle post and runs
// both capability checks. On failure the error response has already been
// written and the returned post is nil.
func (h *BundleHandler) guardBundle(c *fiber.Ctx) (*models.Post, error) {
	idParam := c.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid bundle ID")
	}

	var bundle models.Post
	if err := h.DB.First(&bundle, "id = ? AND post_type = ?", id, models.PostTypeBundle).Error; err != nil {
		return nil, utils.Error(c, fiber.StatusNotFound, utils.CodeNotFound, "Bundle not found")
	}

	if ok, resp := h.authorize(c, &bundle); !ok {
		return nil, resp
	}
	return &bundle, nil
}

// authorize runs both capability checks for a specific bundle. When the
// caller fails one, the error response is written and ok is false.
func (h *BundleHandler) authorize(c *fiber.Ctx, post *models.Post) (bool, error) {
	role := requestRole(c)
	if !CanEditPosts(role) {
		return false, utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit posts")
	}
	userID, ok := requestUserID(c)
	if !ok {
		return false, utils.Error(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authentication token")
	}
	if !CanEditPost(h.DB, userID, role, post) {
		return false, utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit this bundle")
	}
	return true, nil
}

func (h *BundleHandler) linkedCourses(bundleID uuid.UUID) ([]models.Post, error) {
	raw, err := database.GetPostMeta(h.DB, bundleID, models.MetaBundleCourseIDs)
	if err != nil {
		return nil, err
	}

	ids := utils.ParseIDList(raw)
	courses := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		var course models.Post
		if err := h.DB.First(&course, "id = ? AND post_type = ?", id, models.PostTypeCourse).Error; err != nil {
			continue
		}
		courses = append(courses, course)
	}
	return courses, nil
}

func (h *BundleHandler) linkedCourseCards(bundleID uuid.UUID, includeInstructors bool) ([]CourseCard, error) {
	courses, err := h.linkedCourses(bundleID)
	if err != nil {
		return nil, err
	}
	cards := make([]CourseCard, 0, len(courses))
	for i := range courses {
		cards = append(cards, buildCourseCard(h.DB, &courses[i], includeInstructors))
	}
	return cards, nil
}

func bundleView(bundle *models.Post) fiber.Map {
	return fiber.Map{
		"id":         bundle.ID.String(),
		"title":      bundle.Title,
		"content":    bundle.Content,
		"slug":       bundle.Slug,
		"status":     bundle.Status,
		"created_at": bundle.CreatedAt.Format(time.RFC3339),
		"updated_at": bundle.UpdatedAt.Format(time.RFC3339),
	}
}

// coerceBenefits returns the stored blurb, or "" when a plugin wrote a
// serialized structure into the field instead of text.
func coerceBenefits(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "{") {
		if json.Valid([]byte(trimmed)) {
			return ""
		}
	}
	return raw
}

func queryFlag(c *fiber.Ctx, names ...string) bool {
	for _, name := range names {
		if c.Query(name) == "true" {
			return true
		}
	}
	return false
}
