package tenhou

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const (
	DefaultBaseURL = "https://tenhou.net"
	DefaultTimeout = 5 * time.Second
	// DefaultUserAgent User-Agent браузера Edge
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36 Edg/140.0.0.0"

	defaultRequestTimeout = 10 * time.Minute
)

// ErrTransport сетевая ошибка, таймаут или неуспешный HTTP-статус
var ErrTransport = errors.New("transport error")

// StatusError сервер ответил неуспешным статусом
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}

// Config настройки клиента
type Config struct {
	BaseURL string
	// Timeout таймаут подключения и ожидания заголовков ответа
	Timeout   time.Duration
	UserAgent string
	// Transport для тестов
	Transport http.RoundTripper
}

// Client HTTP-клиент сервера логов
type Client struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

// NewClient создает клиент
func NewClient(cfg *Config, log *slog.Logger) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	transport := cfg.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: cfg.Timeout}).DialContext,
			TLSHandshakeTimeout:   cfg.Timeout,
			ResponseHeaderTimeout: cfg.Timeout,
			MaxIdleConns:          10,
			IdleConnTimeout:       90 * time.Second,
		}
	}

	return &Client{
		client: &http.Client{
			Timeout:   defaultRequestTimeout,
			Transport: transport,
		},
		log:       log,
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// ListingURL адрес каталога последних 7 дней или архива
func (c *Client) ListingURL(archive bool) string {
	if archive {
		return c.baseURL + "/sc/raw/list.cgi?old"
	}
	return c.baseURL + "/sc/raw/list.cgi"
}

// ArchiveFileURL адрес файла каталога, path может содержать каталог года
func (c *Client) ArchiveFileURL(path string) string {
	return c.baseURL + "/sc/raw/dat/" + strings.TrimPrefix(path, "/")
}

// LogURL адрес лога игры
func (c *Client) LogURL(id string) string {
	return c.baseURL + "/0/log/?" + id
}

// YakumanURL адрес списка якуманов за месяц
func (c *Client) YakumanURL(year, month int) string {
	return fmt.Sprintf("%s/sc/%04d/%02d/ykm.js", c.baseURL, year, month)
}

// FetchListing загружает каталог файлов
func (c *Client) FetchListing(ctx context.Context, archive bool) (string, error) {
	body, err := c.get(ctx, c.ListingURL(archive))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchArchiveFile загружает файл каталога как есть (обычно gzip)
func (c *Client) FetchArchiveFile(ctx context.Context, path string) ([]byte, error) {
	return c.get(ctx, c.ArchiveFileURL(path))
}

// FetchLog загружает XML лога игры
func (c *Client) FetchLog(ctx context.Context, id string) ([]byte, error) {
	body, err := c.get(ctx, c.LogURL(id))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body for %s", ErrTransport, id)
	}
	return body, nil
}

// FetchYakuman загружает ykm.js за месяц
func (c *Client) FetchYakuman(ctx context.Context, year, month int) (string, error) {
	body, err := c.get(ctx, c.YakumanURL(year, month))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrTransport, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrTransport, url, err)
	}

	c.log.Debug("GET", "url", url, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}
