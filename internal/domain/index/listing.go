package index

import (
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultMinInterval минимальный интервал между синхронизациями с последними 7 днями
const DefaultMinInterval = 20 * time.Minute

// list([{file:'scc2024031215.html.gz',size:1234},{file:'2023/scc20230101.html.gz',size:56789}]);
var listingEntryPattern = regexp.MustCompile(`\{\s*file\s*:\s*'([^']+)'\s*,\s*size\s*:\s*(\d+)\s*\}`)

// RemoteFile запись каталога: путь на сервере и размер в байтах
type RemoteFile struct {
	Path string
	Size int64
}

// Listing каталог, ключ: базовое имя файла
type Listing map[string]RemoteFile

// ShouldFetch false, если с last прошло не больше minInterval
func ShouldFetch(last, now time.Time, minInterval time.Duration) bool {
	return now.Sub(last) > minInterval
}

// ParseListing разбирает каталог по шаблону, без строгой грамматики.
// Текст без совпадений дает пустой каталог.
func ParseListing(text string) Listing {
	listing := make(Listing)
	for _, m := range listingEntryPattern.FindAllStringSubmatch(text, -1) {
		size, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || size <= 0 {
			continue
		}
		listing[path.Base(m[1])] = RemoteFile{Path: m[1], Size: size}
	}
	return listing
}

// FilterByPrefix оставляет файлы, чьё базовое имя начинается с prefix
func FilterByPrefix(listing Listing, prefix string) Listing {
	filtered := make(Listing, len(listing))
	for name, f := range listing {
		if strings.HasPrefix(name, prefix) {
			filtered[name] = f
		}
	}
	return filtered
}

// Diff возвращает файлы, которых нет в known или чей размер изменился.
// Логи на сервере только дописываются, поэтому изменённый файл читается целиком.
func Diff(remote Listing, known map[string]int64) Listing {
	changed := make(Listing)
	for name, f := range remote {
		if size, ok := known[name]; ok && size == f.Size {
			continue
		}
		changed[name] = f
	}
	return changed
}
