package usecase

import "errors"

var (
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrJobNotFound   = errors.New("job not found")
	ErrNotAnEmployee = errors.New("only employees can apply for jobs")
	ErrAlreadyFilled = errors.New("job has already been filled")
)
