package utils

// Machine-readable error codes carried in every error response.
const (
	CodeBadRequest   = "bad_request"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeNotFound     = "not_found"

	// The certificate feature flag is off or Tutor LMS is inactive.
	CodeAddonDisabled = "addon_disabled"

	// The template source could not be reached at all.
	CodeTemplateSourceUnavailable = "template_source_unavailable"

	// A write did not take effect, caught by read-after-write verification.
	CodeStorageFailure = "storage_failure"

	CodeUnexpected = "unexpected"
)
