package validate

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"hououlogs/internal/domain/catalog"
)

// RootTag корневой элемент лога игры
const RootTag = "mjloggm"

// Element один элемент-событие лога
type Element struct {
	Name  string
	Attrs []xml.Attr
}

// String сериализует элемент как пустой XML-тег
func (e Element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.Name)
	for _, a := range e.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name.Local)
		b.WriteString(`="`)
		_ = xml.EscapeText(&b, []byte(a.Value))
		b.WriteByte('"')
	}
	b.WriteString("/>")
	return b.String()
}

// Attr значение атрибута и признак его наличия
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Round одна раздача: от INIT до следующего INIT или финального элемента
type Round []Element

// String сериализует раздачу, элементы через перевод строки
func (r Round) String() string {
	parts := make([]string, len(r))
	for i, e := range r {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n")
}

type splitState int

const (
	awaitingRound splitState = iota
	inRound
	gameEnded
)

// SplitRounds разбивает документ лога на раздачи.
// Документ без финального маркера owari отклоняется целиком.
func SplitRounds(doc []byte) ([]Round, error) {
	dec := xml.NewDecoder(bytes.NewReader(doc))

	root, err := rootElement(dec)
	if err != nil {
		return nil, err
	}
	if root.Name.Local != RootTag {
		return nil, fmt.Errorf("%w: root element %q, want %q", catalog.ErrFormat, root.Name.Local, RootTag)
	}

	var (
		rounds  []Round
		current Round
		state   = awaitingRound
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode log: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		// элементы лога пустые, вложенность не читаем
		if err := dec.Skip(); err != nil {
			return nil, fmt.Errorf("failed to decode log: %w", err)
		}

		e := Element{Name: start.Name.Local, Attrs: start.Attr}

		switch state {
		case gameEnded:
			if !isConnection(e.Name) {
				return nil, fmt.Errorf("%w: element %s after the end of the game", catalog.ErrFormat, e.Name)
			}
			continue
		case awaitingRound:
			if isSetup(e.Name) || isConnection(e.Name) {
				continue
			}
			if e.Name != "INIT" {
				return nil, fmt.Errorf("%w: element %s before the first round", catalog.ErrFormat, e.Name)
			}
		}

		switch {
		case isSetup(e.Name):
			continue
		case e.Name == "INIT":
			if len(current) > 0 {
				rounds = append(rounds, current)
			}
			current = Round{withoutAttr(e, "shuffle")}
			state = inRound
		case isFinal(e):
			current = append(current, e)
			rounds = append(rounds, current)
			current = nil
			state = gameEnded
		default:
			current = append(current, e)
		}
	}

	if state != gameEnded {
		return nil, ErrIncomplete
	}
	return rounds, nil
}

// rootElement пропускает пролог и возвращает корневой элемент
func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, fmt.Errorf("%w: empty document", catalog.ErrFormat)
		}
		if err != nil {
			return xml.StartElement{}, fmt.Errorf("failed to decode log: %w", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

func isSetup(name string) bool {
	return name == "SHUFFLE" || name == "GO" || name == "TAIKYOKU"
}

func isConnection(name string) bool {
	return name == "UN" || name == "BYE"
}

func isFinal(e Element) bool {
	if e.Name != "AGARI" && e.Name != "RYUUKYOKU" {
		return false
	}
	_, ok := e.Attr("owari")
	return ok
}

func withoutAttr(e Element, name string) Element {
	attrs := make([]xml.Attr, 0, len(e.Attrs))
	for _, a := range e.Attrs {
		if a.Name.Local != name {
			attrs = append(attrs, a)
		}
	}
	return Element{Name: e.Name, Attrs: attrs}
}
