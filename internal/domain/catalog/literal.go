package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/titanous/json5"
)

// FindArrayLiteral находит присваивание name=[...] и читает массив как данные JSON5.
// Код после литерала не читается и не исполняется.
func FindArrayLiteral(text, name string) ([]any, error) {
	re, err := regexp.Compile(`(?:^|[^\w$.])` + regexp.QuoteMeta(name) + `\s*=\s*\[`)
	if err != nil {
		return nil, fmt.Errorf("failed to build pattern for %q: %w", name, err)
	}

	loc := re.FindStringIndex(text)
	if loc == nil {
		return nil, fmt.Errorf("%w: array literal %q not found", ErrFormat, name)
	}

	var items []any
	if err := json5.NewDecoder(strings.NewReader(text[loc[1]-1:])).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: array literal %q: %v", ErrFormat, name, err)
	}
	if items == nil {
		items = []any{}
	}
	return items, nil
}
