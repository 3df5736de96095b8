package models

// Success Response Models

// LoginSuccessResponse represents successful login response
type LoginSuccessResponse struct {
	Token string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	Role  string `json:"role" example:"EMPLOYEE"`
}

// MessageResponse represents a generic message response
type MessageResponse struct {
	Message string `json:"message" example:"Check-in recorded successfully."`
}

// CheckOutSuccessResponse represents successful check-out response
type CheckOutSuccessResponse struct {
	Message      string `json:"message" example:"Check-out successful."`
	CheckOutTime string `json:"checkOutTime" example:"2025-09-01T17:02:11Z"`
}

// Error Response Models

// ErrorResponse represents basic error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

// UnauthorizedErrorResponse represents unauthorized error response
type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Invalid or expired token"`
}

// ForbiddenErrorResponse represents forbidden error response
type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Admin access required"`
}

// NotFoundErrorResponse represents not found error response
type NotFoundErrorResponse struct {
	Error string `json:"error" example:"User not found."`
}

// ConflictErrorResponse represents conflict error response
type ConflictErrorResponse struct {
	Error string `json:"error" example:"You have already checked in today."`
}
