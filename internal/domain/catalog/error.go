package catalog

import "errors"

var (
	// ErrFormat формат данных не совпадает с ожидаемым: изменился формат на стороне сервера
	ErrFormat = errors.New("unexpected payload format")
	// ErrInvalidID идентификатор лога не удалось разобрать
	ErrInvalidID = errors.New("invalid log id")
)
