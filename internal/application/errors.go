package application

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrNoValidIDs         = errors.New("no valid ids")
	ErrLibrarianAssigned  = errors.New("library already has a librarian")
	ErrNotImage           = errors.New("file is not an image")
)
