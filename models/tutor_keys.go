package models

// Post types and statuses used by Tutor LMS.
const (
	PostTypeCourse = "courses"
	PostTypeBundle = "course-bundle"
	PostTypeLesson = "lesson"
	PostTypeQuiz   = "tutor_quiz"

	StatusPublish = "publish"
	StatusDraft   = "draft"
)

// Meta keys following the Tutor LMS field conventions.
const (
	MetaBundleCourseIDs     = "bundle-course-ids"
	MetaBenefits            = "_tutor_course_benefits"
	MetaPriceType           = "_tutor_course_price_type"
	MetaRegularPrice        = "_regular_price"
	MetaSalePrice           = "_sale_price"
	MetaCourseDuration      = "_course_duration"
	MetaCoInstructors       = "_tutor_course_co_instructors"
	MetaAttachments         = "_tutor_attachments"
	MetaThumbnailURL        = "_thumbnail_url"
	MetaCertificateTemplate = "tutor_course_certificate_template"
	MetaJobTitle            = "_tutor_profile_job_title"
)

const (
	PriceTypeFree = "free"
	PriceTypePaid = "paid"
)

// Certificate template keys with reserved meaning. "off" is a legacy
// synonym for "none" and never surfaces in the public template list.
const (
	TemplateKeyDefault = "default"
	TemplateKeyNone    = "none"
	TemplateKeyOff     = "off"
)

// User roles. Admin is the manage_options analogue; instructors hold the
// general edit-posts capability.
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// Addon names recognised by the feature-flag service.
const (
	AddonCertificate = "tutor-certificate"
)
