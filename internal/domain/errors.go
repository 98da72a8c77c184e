package domain

import "errors"

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserInactive              = errors.New("user is inactive")
	ErrUnsupportedFileType       = errors.New("unsupported file type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail            = errors.New("email already registered")
	ErrUploadFailed              = errors.New("file upload to storage failed")
	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or already used")
	ErrFoodNotFound              = errors.New("food item not found")
	ErrScanFailed                = errors.New("receipt scan failed")
	ErrNoNutritionData           = errors.New("no nutrition data for the requested period")
)
