package catalog

import (
	"fmt"
	"regexp"
	"strconv"

	"hououlogs/internal/model"
)

const (
	// ArchivePrefix префикс файлов каталога с логами комнаты Houou
	ArchivePrefix = "scc"

	typeHanchanBit = 0x008
	typeSanmaBit   = 0x010
)

// 2009020100gm-00a9-0000-00000000: дата и час, тип, лобби, хэш
var logIDPattern = regexp.MustCompile(`^(\d{10})gm-([0-9a-fA-F]{4})-\d{4}-[0-9a-fA-F]{8}$`)

var (
	clockPattern   = regexp.MustCompile(`^\d{2}:\d{2}$`)
	yakumanPattern = regexp.MustCompile(`^(\d{2})/(\d{2}) (\d{2}:\d{2})$`)
)

// SplitID возвращает метку времени YYYYMMDDhh и код типа из идентификатора
func SplitID(id string) (stamp, typeCode string, err error) {
	m := logIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return m[1], m[2], nil
}

// ParseType декодирует код типа игры
func ParseType(code string) (numPlayers int, isTonpu bool, err error) {
	v, err := strconv.ParseUint(code, 16, 16)
	if err != nil {
		return 0, false, fmt.Errorf("%w: type code %q", ErrInvalidID, code)
	}

	numPlayers = 4
	if v&typeSanmaBit != 0 {
		numPlayers = 3
	}
	isTonpu = v&typeHanchanBit == 0

	return numPlayers, isTonpu, nil
}

// ParseDate собирает дату из метки YYYYMMDDhh идентификатора и времени HH:MM
func ParseDate(clock, stamp string) (string, error) {
	if !clockPattern.MatchString(clock) {
		return "", fmt.Errorf("%w: time %q", ErrFormat, clock)
	}
	if len(stamp) < 8 {
		return "", fmt.Errorf("%w: stamp %q", ErrInvalidID, stamp)
	}
	return fmt.Sprintf("%s-%s-%sT%s", stamp[0:4], stamp[4:6], stamp[6:8], clock), nil
}

// ParseHourDate дата с точностью до часа для старых логов без минут
func ParseHourDate(stamp string) (string, error) {
	if len(stamp) < 10 {
		return "", fmt.Errorf("%w: stamp %q", ErrInvalidID, stamp)
	}
	return fmt.Sprintf("%s-%s-%s %s", stamp[0:4], stamp[4:6], stamp[6:8], stamp[8:10]), nil
}

// ParseYakumanDate дата из списка якуманов: "01/31 23:57" без года
func ParseYakumanDate(year int, date string) (string, error) {
	m := yakumanPattern.FindStringSubmatch(date)
	if m == nil {
		return "", fmt.Errorf("%w: date %q", ErrFormat, date)
	}
	return fmt.Sprintf("%04d-%s-%sT%s", year, m[1], m[2], m[3]), nil
}

// newEntry строит запись в состоянии Discovered
func newEntry(id, date string) (model.LogRecord, error) {
	_, code, err := SplitID(id)
	if err != nil {
		return model.LogRecord{}, err
	}

	numPlayers, isTonpu, err := ParseType(code)
	if err != nil {
		return model.LogRecord{}, err
	}

	return model.NewDiscovered(id, date, numPlayers, isTonpu), nil
}
