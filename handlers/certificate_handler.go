package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tutorpress/tutorpress-api/database"
	"github.com/tutorpress/tutorpress-api/models"
	"github.com/tutorpress/tutorpress-api/services"
	"github.com/tutorpress/tutorpress-api/utils"
)

type CertificateHandler struct {
	DB        *gorm.DB
	Templates services.TemplateProvider
	Addons    *services.AddonService
	Preview   *services.PreviewRenderer
}

func NewCertificateHandler(db *gorm.DB, templates services.TemplateProvider, addons *services.AddonService, preview *services.PreviewRenderer) *CertificateHandler {
	return &CertificateHandler{DB: db, Templates: templates, Addons: addons, Preview: preview}
}

type SaveSelectionRequest struct {
	CourseID    string `json:"course_id" validate:"required"`
	TemplateKey string `json:"template_key" validate:"required"`
}

func (h *CertificateHandler) GetTemplates(c *fiber.Ctx) error {
	if !CanEditPosts(requestRole(c)) {
		return utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit posts")
	}
	if ok, resp := h.requireAddon(c); !ok {
		return resp
	}

	includeNone := c.Query("include_none", "true") != "false"

	templates, err := h.Templates.ListTemplates(true)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeTemplateSourceUnavailable, "Certificate templates are unavailable")
	}
	if len(templates) == 0 {
		return utils.Error(c, fiber.StatusNotFound, utils.CodeNotFound, "No certificate templates found")
	}

	list := make([]services.CertificateTemplate, 0, len(templates))
	for key, tpl := range templates {
		// "off" is a legacy synonym for "none"; listing both would show
		// two "no certificate" options.
		if key == models.TemplateKeyOff {
			continue
		}
		if key == models.TemplateKeyNone && !includeNone {
			continue
		}
		list = append(list, normalizeTemplate(key, tpl))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsDefault != list[j].IsDefault {
			return list[i].IsDefault
		}
		return list[i].Key < list[j].Key
	})

	return utils.Success(c, "Certificate templates retrieved", fiber.Map{
		"templates": list,
		"total":     len(list),
	})
}

func (h *CertificateHandler) SaveSelection(c *fiber.Ctx) error {
	var req SaveSelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, err.Error())
	}

	course, resp := h.guardCourse(c, req.CourseID)
	if course == nil {
		return resp
	}

	// Key validation is deliberately lenient: when the template set cannot
	// be enumerated the key is accepted and the save path surfaces any
	// real failure.
	if templates, err := h.Templates.ListTemplates(true); err == nil {
		if _, known := templates[req.TemplateKey]; !known {
			return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Unknown certificate template")
		}
	}

	if err := database.UpdatePostMeta(h.DB, course.ID, models.MetaCertificateTemplate, req.TemplateKey); err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeStorageFailure, "Failed to save certificate selection")
	}

	// Read back to catch silent storage failures.
	stored, err := database.GetPostMeta(h.DB, course.ID, models.MetaCertificateTemplate)
	if err != nil || stored != req.TemplateKey {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeStorageFailure, "Certificate selection did not persist")
	}

	return utils.Success(c, "Certificate selection saved", fiber.Map{
		"course_id":    course.ID.String(),
		"template_key": stored,
	})
}

func (h *CertificateHandler) GetSelection(c *fiber.Ctx) error {
	course, resp := h.guardCourse(c, c.Params("courseId"))
	if course == nil {
		return resp
	}

	key, err := database.GetPostMeta(h.DB, course.ID, models.MetaCertificateTemplate)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to read certificate selection")
	}
	if key == "" {
		key = models.TemplateKeyDefault
	}

	return utils.Success(c, "Certificate selection retrieved", fiber.Map{
		"course_id":    course.ID.String(),
		"template_key": key,
	})
}

func (h *CertificateHandler) PreviewSelection(c *fiber.Ctx) error {
	if ok, resp := h.requireAddon(c); !ok {
		return resp
	}

	course, resp := h.guardCourse(c, c.Params("courseId"))
	if course == nil {
		return resp
	}

	key, err := database.GetPostMeta(h.DB, course.ID, models.MetaCertificateTemplate)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to read certificate selection")
	}
	if key == "" {
		key = models.TemplateKeyDefault
	}
	if key == models.TemplateKeyNone || key == models.TemplateKeyOff {
		return utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Course has no certificate template selected")
	}

	templates, err := h.Templates.ListTemplates(true)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeTemplateSourceUnavailable, "Certificate templates are unavailable")
	}
	tpl, known := templates[key]
	if !known {
		return utils.Error(c, fiber.StatusNotFound, utils.CodeNotFound, "Selected certificate template no longer exists")
	}

	var instructorName string
	var author models.User
	if err := h.DB.First(&author, "id = ?", course.AuthorID).Error; err == nil {
		instructorName = author.DisplayName
	}

	url, err := h.Preview.RenderAndUpload(c.Context(), normalizeTemplate(key, tpl), course.ID, course.Title, instructorName)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, utils.CodeUnexpected, "Failed to render certificate preview")
	}

	return utils.Success(c, "Certificate preview rendered", fiber.Map{
		"course_id":    course.ID.String(),
		"template_key": key,
		"preview_url":  url,
	})
}

func (h *CertificateHandler) requireAddon(c *fiber.Ctx) (bool, error) {
	if !h.Addons.PluginActive() {
		return false, utils.Error(c, fiber.StatusNotFound, utils.CodeAddonDisabled, "Tutor LMS is not active")
	}
	if !h.Addons.CanUserAccessFeature(models.AddonCertificate) {
		return false, utils.Error(c, fiber.StatusNotFound, utils.CodeAddonDisabled, "Certificate addon is disabled")
	}
	return true, nil
}

// guardCourse resolves a course ID (body field or route parameter) and
// runs both capability checks, mirroring guardBundle.
func (h *CertificateHandler) guardCourse(c *fiber.Ctx, rawID string) (*models.Post, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, utils.Error(c, fiber.StatusBadRequest, utils.CodeBadRequest, "Invalid course ID")
	}

	var course models.Post
	if err := h.DB.First(&course, "id = ? AND post_type = ?", id, models.PostTypeCourse).Error; err != nil {
		return nil, utils.Error(c, fiber.StatusNotFound, utils.CodeNotFound, "Course not found")
	}

	role := requestRole(c)
	if !CanEditPosts(role) {
		return nil, utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit posts")
	}
	userID, ok := requestUserID(c)
	if !ok {
		return nil, utils.Error(c, fiber.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authentication token")
	}
	if !CanEditPost(h.DB, userID, role, &course) {
		return nil, utils.Error(c, fiber.StatusForbidden, utils.CodeForbidden, "You are not allowed to edit this course")
	}
	return &course, nil
}

// normalizeTemplate fills the explicit fallbacks the response contract
// promises for any field the source left blank.
func normalizeTemplate(key string, tpl services.CertificateTemplate) services.CertificateTemplate {
	if tpl.Key == "" {
		tpl.Key = key
	}
	if tpl.Slug == "" {
		tpl.Slug = key
	}
	if tpl.Name == "" {
		tpl.Name = key
	}
	if tpl.Orientation == "" && key != models.TemplateKeyNone && key != models.TemplateKeyOff {
		tpl.Orientation = "landscape"
	}
	if tpl.PreviewSrc == "" && tpl.URL != "" {
		tpl.PreviewSrc = tpl.URL + "/preview.png"
	}
	if tpl.BackgroundSrc == "" && tpl.URL != "" {
		tpl.BackgroundSrc = tpl.URL + "/background.png"
	}
	return tpl
}
