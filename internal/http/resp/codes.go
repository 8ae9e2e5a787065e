package resp

const (
	CodeOK            = "ok"
	CodeQueued        = "queued"
	CodeBadRequest    = "bad_request"
	CodeUnauthorized  = "unauthorized"
	CodeNotFound      = "not_found"
	CodeInternalError = "internal_error"
	CodeUnavailable   = "unavailable"
)
