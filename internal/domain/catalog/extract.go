package catalog

import (
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"hououlogs/internal/model"
	"hououlogs/internal/utils/gz"
)

const idPattern = `\d{10}gm-[0-9a-fA-F]{4}-\d{4}-[0-9a-fA-F]{8}`

var (
	// 00:00 | 07 | 四鳳南喰赤 | <a href="http://tenhou.net/0/?log=2009020100gm-00a9-0000-00000000">牌譜</a> | ...
	linePattern   = regexp.MustCompile(`(?m)^[ \t]*(\d{2}:\d{2})[^\n]*?[?&]log=(` + idPattern + `)`)
	anchorPattern = regexp.MustCompile(`(?i)<a\s[^>]*?href\s*=\s*["']?[^"'>]*?[?&]log=(` + idPattern + `)`)
)

// YakumanVar имя переменной со списком якуманов в ykm.js
const YakumanVar = "ykm"

// Pair сырая пара (дата или время, идентификатор) в порядке документа
type Pair struct {
	Date string
	ID   string
}

// Payload сырые данные одного из исторических форматов каталога.
// Формат выбирает вызывающий код по контексту, содержимое не угадывается.
type Payload interface {
	entries() ([]model.LogRecord, error)
}

// AnchorPayload HTML со ссылками вида <a href="...?log=<id>">, дата из id с точностью до часа
type AnchorPayload struct {
	Text string
}

// LinePayload строки "HH:MM | ... log=<id>" из файлов scc
type LinePayload struct {
	Text string
}

// LiteralPayload скрипт с присваиванием name=[...] (ykm.js)
type LiteralPayload struct {
	Text string
	Var  string // по умолчанию ykm
	Year int    // год, к которому относятся даты "MM/DD HH:MM"
}

// Extract превращает payload в записи в состоянии Discovered
func Extract(p Payload) ([]model.LogRecord, error) {
	return p.entries()
}

// ExtractIDs извлекает пары (HH:MM, id) из построчного формата
func ExtractIDs(text string) []Pair {
	// BOM перед первой строкой мешает якорю ^
	text = strings.TrimPrefix(text, "\uFEFF")
	matches := linePattern.FindAllStringSubmatch(text, -1)
	pairs := make([]Pair, 0, len(matches))
	for _, m := range matches {
		pairs = append(pairs, Pair{Date: m[1], ID: m[2]})
	}
	return pairs
}

// ExtractAnchorIDs извлекает идентификаторы из ссылок в порядке документа
func ExtractAnchorIDs(text string) []string {
	matches := anchorPattern.FindAllStringSubmatch(text, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}

func (p AnchorPayload) entries() ([]model.LogRecord, error) {
	ids := ExtractAnchorIDs(p.Text)
	records := make([]model.LogRecord, 0, len(ids))
	for _, id := range ids {
		stamp, _, err := SplitID(id)
		if err != nil {
			return nil, err
		}
		date, err := ParseHourDate(stamp)
		if err != nil {
			return nil, err
		}
		rec, err := newEntry(id, date)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (p LinePayload) entries() ([]model.LogRecord, error) {
	pairs := ExtractIDs(p.Text)
	records := make([]model.LogRecord, 0, len(pairs))
	for _, pair := range pairs {
		stamp, _, err := SplitID(pair.ID)
		if err != nil {
			return nil, err
		}
		date, err := ParseDate(pair.Date, stamp)
		if err != nil {
			return nil, err
		}
		rec, err := newEntry(pair.ID, date)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (p LiteralPayload) entries() ([]model.LogRecord, error) {
	name := p.Var
	if name == "" {
		name = YakumanVar
	}

	pairs, err := ExtractLiteralIDs(p.Text, name)
	if err != nil {
		return nil, err
	}

	records := make([]model.LogRecord, 0, len(pairs))
	for _, pair := range pairs {
		date, err := ParseYakumanDate(p.Year, pair.Date)
		if err != nil {
			return nil, err
		}
		rec, err := newEntry(pair.ID, date)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

const (
	literalStride  = 5
	literalDateIdx = 0
	literalIDIdx   = 4
)

// ExtractLiteralIDs извлекает пары (MM/DD HH:MM, id) из массива name=[...].
// Новая форма: плоский массив с шагом 5, старая: массив вложенных массивов.
func ExtractLiteralIDs(text, name string) ([]Pair, error) {
	items, err := FindArrayLiteral(text, name)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return []Pair{}, nil
	}

	switch items[0].(type) {
	case string:
		return flatPairs(items)
	case []any:
		return nestedPairs(items)
	default:
		return nil, fmt.Errorf("%w: unexpected first element %T in %s", ErrFormat, items[0], name)
	}
}

func flatPairs(items []any) ([]Pair, error) {
	if len(items)%literalStride != 0 {
		return nil, fmt.Errorf("%w: %d elements is not a multiple of %d", ErrFormat, len(items), literalStride)
	}

	pairs := make([]Pair, 0, len(items)/literalStride)
	for i := 0; i < len(items); i += literalStride {
		date, ok1 := items[i+literalDateIdx].(string)
		id, ok2 := items[i+literalIDIdx].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: entry %d is not (date, ..., id)", ErrFormat, i/literalStride)
		}
		// 2025013123gm-0001-0000-12b924e3&tw=2&ts=4
		id, _, _ = strings.Cut(id, "&")
		pairs = append(pairs, Pair{Date: date, ID: id})
	}
	return pairs, nil
}

func nestedPairs(items []any) ([]Pair, error) {
	pairs := make([]Pair, 0, len(items))
	for i, item := range items {
		row, ok := item.([]any)
		if !ok || len(row) < 2 {
			return nil, fmt.Errorf("%w: entry %d is not a list", ErrFormat, i)
		}

		// в самых старых списках строка короче и id стоит последним
		idIdx := literalIDIdx
		if len(row) <= literalIDIdx {
			idIdx = len(row) - 1
		}

		date, ok1 := row[literalDateIdx].(string)
		id, ok2 := row[idIdx].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: entry %d is not (date, ..., id)", ErrFormat, i)
		}
		pairs = append(pairs, Pair{Date: date, ID: id})
	}
	return pairs, nil
}

// ExtractMember читает член архива: .html как есть, .html.gz через gzip.
// Прочие файлы (.log, .log.gz и т.п.) пропускаются без ошибки.
func ExtractMember(name string, r io.Reader, anchors bool) ([]model.LogRecord, error) {
	var text string
	switch base := path.Base(name); {
	case strings.HasSuffix(base, ".html.gz"):
		data, err := gz.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		text = string(data)
	case strings.HasSuffix(base, ".html"):
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		text = string(data)
	default:
		return []model.LogRecord{}, nil
	}

	if anchors {
		return Extract(AnchorPayload{Text: text})
	}
	return Extract(LinePayload{Text: text})
}
