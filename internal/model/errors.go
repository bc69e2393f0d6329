package model

import "errors"

var (
	// User related errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	// Blog related errors
	ErrBlogNotFound = errors.New("blog not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
