package index

import "errors"

var (
	// ErrTooSoon с последней синхронизации прошло меньше минимального интервала
	ErrTooSoon = errors.New("last fetch was too recent")
)
