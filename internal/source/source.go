package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	userAgent      = "spigell/candidate-ranker"
	defaultTimeout = 10 * time.Second

	// Stdin is the location that reads from standard input.
	Stdin = "-"
)

var ErrEmptyLocation = errors.New("location is empty")

// Loader fetches raw job and candidate records from a file, standard input or
// an HTTP(S) endpoint.
type Loader struct {
	client *resty.Client
	stdin  io.Reader
	logger *zap.Logger
}

type Option func(*Loader)

// WithToken sends a bearer token with every HTTP request.
func WithToken(token string) Option {
	return func(l *Loader) {
		if token = strings.TrimSpace(token); token != "" {
			l.client.SetAuthToken(token)
		}
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		if timeout > 0 {
			l.client.SetTimeout(timeout)
		}
	}
}

func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

func New(logger *zap.Logger, opts ...Option) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	l := &Loader{
		client: resty.New().
			SetTimeout(defaultTimeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept", "application/json"),
		stdin:  os.Stdin,
		logger: logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the raw bytes found at location.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	switch {
	case location == "":
		return nil, ErrEmptyLocation
	case location == Stdin:
		l.logger.Debug("read from stdin")
		return io.ReadAll(l.stdin)
	case isURL(location):
		return l.fetch(ctx, location)
	default:
		l.logger.Debug("read file", zap.String("path", location))
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return data, nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	l.logger.Debug("make request", zap.String("url", url))

	resp, err := l.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: bad status: %s", url, resp.Status())
	}

	return resp.Body(), nil
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
