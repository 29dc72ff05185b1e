package application

import (
	"errors"

	"github.com/oksasatya/portfolio-api/internal/domain/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInvalidRole       = errors.New("invalid role")
	ErrLastOwner         = repository.ErrLastOwner
)
