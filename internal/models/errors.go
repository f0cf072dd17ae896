package models

import "fmt"

// Error codes used across the client.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeAPI           = "API_ERROR"
	CodeNetwork       = "NETWORK_ERROR"
	CodePartialUpload = "PARTIAL_UPLOAD"
)

// AppError is the common shape of client-side failures.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError is a local, pre-submission failure. It blocks the action
// and is never sent to the server.
type ValidationError struct {
	AppError
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{AppError{Code: CodeValidation, Message: message}}
}

// ApiError carries a non-2xx response. Message is the server-supplied error
// text, or "HTTP <status>" when the body had none.
type ApiError struct {
	AppError
	Status int
}

func NewApiError(status int, message string) *ApiError {
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &ApiError{AppError: AppError{Code: CodeAPI, Message: message}, Status: status}
}

// NetworkError means the request could not complete at all.
type NetworkError struct {
	AppError
}

func NewNetworkError(err error) *NetworkError {
	return &NetworkError{AppError{Code: CodeNetwork, Message: "request failed", Err: err}}
}

// PartialUploadError records image uploads that failed after the base
// auction record succeeded. It is logged, not fatal.
type PartialUploadError struct {
	AppError
	Failed []string
}

func NewPartialUploadError(failed []string) *PartialUploadError {
	return &PartialUploadError{
		AppError: AppError{
			Code:    CodePartialUpload,
			Message: fmt.Sprintf("%d image upload(s) failed", len(failed)),
		},
		Failed: failed,
	}
}
