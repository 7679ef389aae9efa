package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidToken            = errors.New("invalid or expired access token")
	ErrUserIDClaimMissing      = errors.New("user_id claim is missing or invalid")
	ErrInvalidRole             = errors.New("invalid role")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
