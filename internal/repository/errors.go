package repository

import "errors"

var (
	ErrJobNotFound      = errors.New("job not found")
	ErrEmployeeNotFound = errors.New("employee profile not found")
	ErrEmployerNotFound = errors.New("employer profile not found")
)
