package repository

import "errors"

// Sentinel error supaya handler bisa menerjemahkan kegagalan storage ke
// status HTTP tanpa membongkar error driver.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
