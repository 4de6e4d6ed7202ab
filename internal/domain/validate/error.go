package validate

import "errors"

var (
	// ErrCorrupted сохраненный лог не удалось распаковать или разобрать
	ErrCorrupted = errors.New("corrupted log content")
	// ErrIncomplete документ закончился раньше финального AGARI/RYUUKYOKU
	ErrIncomplete = errors.New("incomplete game log")
)
