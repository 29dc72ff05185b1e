package repository

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("record already exists")
	ErrLastOwner = errors.New("cannot demote the last remaining owner")
)
