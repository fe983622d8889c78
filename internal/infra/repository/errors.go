package repository

import "errors"

var (
	ErrDatabase          = errors.New("database error")
	ErrInvalidRecordData = errors.New("invalid record data")
)
