package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidDose     = errors.New("dose is not on the titration ladder")
	ErrInvalidSite     = errors.New("unknown injection site")
)
