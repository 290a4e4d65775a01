package dto

// BaseError is the error envelope every endpoint returns.
// Code is machine-oriented (snake_case), Message is short human-readable
// text, Details carries optional upstream detail, Fields carries field-level
// validation errors.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Semantic aliases so swagger can document distinct @Failure shapes.
// All share the same JSON layout.

type ValidationErrorResponse BaseError  // 400
type UnauthorizedErrorResponse BaseError // 401
type ForbiddenErrorResponse BaseError   // 403
type NotFoundErrorResponse BaseError    // 404
type ConflictErrorResponse BaseError    // 409
type RateLimitedErrorResponse BaseError // 429
type UpstreamErrorResponse BaseError    // 502
type InternalErrorResponse BaseError    // 500

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg, Fields: fields})
}

func NewUnauthorizedError(msg string) UnauthorizedErrorResponse {
	return UnauthorizedErrorResponse(BaseError{Code: "unauthorized", Message: msg})
}

func NewForbiddenError(msg string) ForbiddenErrorResponse {
	return ForbiddenErrorResponse(BaseError{Code: "forbidden", Message: msg})
}

func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}

func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}

func NewRateLimitedError(msg string) RateLimitedErrorResponse {
	return RateLimitedErrorResponse(BaseError{Code: "rate_limited", Message: msg})
}

func NewUpstreamError(msg, details string) UpstreamErrorResponse {
	return UpstreamErrorResponse(BaseError{Code: "upstream_error", Message: msg, Details: details})
}

func NewInternalError(msg string) InternalErrorResponse {
	if msg == "" {
		msg = "internal server error"
	}
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: msg})
}
