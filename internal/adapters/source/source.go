package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/okian/benchgraph/internal/domain/bench"
	"github.com/okian/benchgraph/pkg/logger"
)

// Default HTTP source configuration constants.
const (
	defaultRetryMax     = 3
	defaultRetryWaitMin = 500 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
	defaultHTTPTimeout  = 30 * time.Second
	maxBodyBytes        = 64 << 20
)

// Source produces benchmark snapshots.
type Source interface {
	// Load reads the full history, honoring ctx for cancellation.
	Load(ctx context.Context) (*bench.Snapshot, error)
	// Name describes the source for logs and metrics.
	Name() string
}

// FileSource reads a data.js document from disk.
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string { return "file:" + s.path }

// Load reads and parses the file.
func (s *FileSource) Load(ctx context.Context) (*bench.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("source.file: %w", err)
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("source.file %s: %w", s.path, err)
	}
	return Parse(raw)
}

// HTTPOption applies a configuration option to the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithRetryMax sets how many times a failed fetch is retried.
func WithRetryMax(n int) HTTPOption {
	return func(s *HTTPSource) {
		if n >= 0 {
			s.client.RetryMax = n
		}
	}
}

// WithRetryWait sets the retry backoff bounds.
func WithRetryWait(minWait, maxWait time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if minWait > 0 && maxWait >= minWait {
			s.client.RetryWaitMin = minWait
			s.client.RetryWaitMax = maxWait
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if d > 0 {
			s.client.HTTPClient.Timeout = d
		}
	}
}

// WithLogger routes retry diagnostics to l.
func WithLogger(l logger.Logger) HTTPOption {
	return func(s *HTTPSource) {
		if l != nil {
			s.client.Logger = &leveledLogger{l: l}
		}
	}
}

// HTTPSource fetches a data.js document over HTTP with retries.
type HTTPSource struct {
	url    string
	client *retryablehttp.Client
}

// NewHTTPSource creates a source fetching url.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	c := retryablehttp.NewClient()
	c.RetryMax = defaultRetryMax
	c.RetryWaitMin = defaultRetryWaitMin
	c.RetryWaitMax = defaultRetryWaitMax
	c.HTTPClient.Timeout = defaultHTTPTimeout
	c.Logger = nil

	s := &HTTPSource{url: url, client: c}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the URL.
func (s *HTTPSource) Name() string { return "http:" + s.url }

// Load fetches and parses the document.
func (s *HTTPSource) Load(ctx context.Context) (*bench.Snapshot, error) {
	const op = "source.http"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrFetch, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: status %d", op, ErrFetch, resp.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrFetch, err)
	}
	return Parse(raw)
}

// New picks an HTTP source when url is set, else a file source.
func New(path, url string, opts ...HTTPOption) (Source, error) {
	switch {
	case url != "":
		return NewHTTPSource(url, opts...), nil
	case path != "":
		return NewFileSource(path), nil
	default:
		return nil, fmt.Errorf("source: %w: neither file nor url configured", ErrInvalidData)
	}
}

// leveledLogger adapts logger.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	l logger.Logger
}

func (a *leveledLogger) Error(msg string, kv ...interface{}) {
	a.l.Error(context.Background(), msg, fields(kv)...)
}

func (a *leveledLogger) Info(msg string, kv ...interface{}) {
	a.l.Info(context.Background(), msg, fields(kv)...)
}

func (a *leveledLogger) Debug(msg string, kv ...interface{}) {
	a.l.Debug(context.Background(), msg, fields(kv)...)
}

func (a *leveledLogger) Warn(msg string, kv ...interface{}) {
	a.l.Warn(context.Background(), msg, fields(kv)...)
}

func fields(kv []interface{}) []logger.Field {
	out := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, logger.Any(fmt.Sprint(kv[i]), kv[i+1]))
	}
	return out
}
