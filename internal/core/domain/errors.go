package domain

import "errors"

var ErrNotFound = errors.New("entity not found")
var ErrInvalidID = errors.New("id must be greater than 0")
var ErrInvalidPagination = errors.New("page and page size must be greater than or equal to 1")
var ErrNilEntity = errors.New("entity must not be nil")
var ErrConflict = errors.New("unique constraint violated")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid email or password")
