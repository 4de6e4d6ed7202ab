package input

import "errors"

// ErrInvalidInput аргументы пользователя вне допустимого диапазона
var ErrInvalidInput = errors.New("invalid input")
