package handlers

const (
	SessionCookieName  = "session_id"
	ReturnToCookieName = "return_to"

	ErrInvalidFormData     = "Invalid form data"
	ErrAccessDenied        = "Access denied"
	ErrInternalServerError = "Internal server error"
)
