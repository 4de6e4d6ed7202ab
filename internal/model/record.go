package model

// LogRecord одна строка таблицы logs: один лог игры на удалённом сервере
type LogRecord struct {
	ID          string `db:"id"`
	Date        string `db:"date"`        // "2009-02-01T00:00" или "2009-02-01 00"
	NumPlayers  int    `db:"num_players"` // 4 или 3
	IsTonpu     bool   `db:"is_tonpu"`    // восточная (короткая) игра
	IsProcessed bool   `db:"is_processed"`
	WasError    bool   `db:"was_error"`
	Log         []byte `db:"log"` // gzip, только для скачанных логов
}

// LogState состояние жизненного цикла записи
type LogState string

const (
	StateDiscovered LogState = "discovered"
	StateDownloaded LogState = "downloaded"
	StateErrored    LogState = "errored"
)

// NewDiscovered создает запись в состоянии Discovered
func NewDiscovered(id, date string, numPlayers int, isTonpu bool) LogRecord {
	return LogRecord{
		ID:         id,
		Date:       date,
		NumPlayers: numPlayers,
		IsTonpu:    isTonpu,
	}
}

// State возвращает состояние записи по её флагам
func (r LogRecord) State() LogState {
	switch {
	case r.WasError:
		return StateErrored
	case r.IsProcessed:
		return StateDownloaded
	default:
		return StateDiscovered
	}
}

// MarkDownloaded переводит запись в Downloaded с сжатым содержимым
func (r *LogRecord) MarkDownloaded(content []byte) {
	r.IsProcessed = true
	r.WasError = false
	r.Log = content
}

// MarkErrored переводит запись в Errored
func (r *LogRecord) MarkErrored() {
	r.IsProcessed = true
	r.WasError = true
	r.Log = nil
}

// Reset возвращает запись в Discovered, чтобы её скачали заново
func (r *LogRecord) Reset() {
	r.IsProcessed = false
	r.WasError = false
	r.Log = nil
}

// RemoteFile файл удалённого каталога, уже прочитанный целиком
type RemoteFile struct {
	Name string `db:"file"`
	Size int64  `db:"size"`
}

// Filter фильтр выборки логов
type Filter struct {
	Players int   // 0: любое количество игроков
	Tonpu   *bool // nil: любая длина игры
	Limit   int   // 0: без ограничения
	Offset  int
	AfterID string // "": с начала, иначе только id > AfterID
}

// Stats счетчики таблицы logs
type Stats struct {
	Total      int `json:"total"`
	Discovered int `json:"discovered"`
	Downloaded int `json:"downloaded"`
	Errored    int `json:"errored"`
	Files      int `json:"files"`
}
