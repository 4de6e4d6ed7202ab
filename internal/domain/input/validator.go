// Package input проверка аргументов командной строки.
package input

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zip"
)

const (
	LengthTonpu   = "t"
	LengthHanchan = "h"
)

// ValidatePlayers количество игроков: 4 или 3
func ValidatePlayers(players int) error {
	if players != 4 && players != 3 {
		return fmt.Errorf("%w: invalid number of players: %d", ErrInvalidInput, players)
	}
	return nil
}

// ValidateLength длина игры: t (тонпусен) или h (ханчан)
func ValidateLength(length string) error {
	if length != LengthTonpu && length != LengthHanchan {
		return fmt.Errorf("%w: invalid length of game: %s", ErrInvalidInput, length)
	}
	return nil
}

// ParseLength переводит код длины в признак тонпусена
func ParseLength(length string) (bool, error) {
	if err := ValidateLength(length); err != nil {
		return false, err
	}
	return length == LengthTonpu, nil
}

func ValidateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: invalid limit: %d", ErrInvalidInput, limit)
	}
	return nil
}

func ValidateOffset(offset int) error {
	if offset < 0 {
		return fmt.Errorf("%w: invalid offset: %d", ErrInvalidInput, offset)
	}
	return nil
}

// ValidateDBPath база должна существовать для команд, которые её только читают
func ValidateDBPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: database not found: %s", ErrInvalidInput, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: database path is a directory: %s", ErrInvalidInput, path)
	}
	return nil
}

// ValidateArchive файл архива существует и является zip
func ValidateArchive(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: archive file not found: %s", ErrInvalidInput, path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: archive file must be zip file: %s", ErrInvalidInput, path)
	}
	return zr.Close()
}
