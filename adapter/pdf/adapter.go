package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/camaradados/proptext/cleaning"
)

const (
	defaultTimeout     = 50 * time.Second
	defaultMaxBodySize = 50 << 20
	userAgent          = "Mozilla/5.0"
)

// Adapter downloads full text documents and decodes them into positioned
// text lines.
type Adapter struct {
	httpClient  *http.Client
	maxBodySize int64
	logger      *zap.Logger
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		a.logger = logger
	}
}

func WithHttpClient(client *http.Client) Option {
	return func(a *Adapter) {
		a.httpClient = client
	}
}

// WithMaxBodySize limits how many bytes of a document are downloaded.
func WithMaxBodySize(n int64) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.maxBodySize = n
		}
	}
}

func New(options ...Option) *Adapter {
	a := &Adapter{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxBodySize: defaultMaxBodySize,
		logger:      zap.NewNop(),
	}

	for _, o := range options {
		o(a)
	}

	a.logger.Sugar().With(
		"timeout", a.httpClient.Timeout,
		"max body size", a.maxBodySize,
	).Info("init pdf adapter")

	return a
}

// Fetch downloads the PDF behind url and decodes it.
func (a *Adapter) Fetch(ctx context.Context, url string) (cleaning.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return cleaning.Document{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return cleaning.Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return cleaning.Document{}, fmt.Errorf("download failed: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, a.maxBodySize+1))
	if err != nil {
		return cleaning.Document{}, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > a.maxBodySize {
		return cleaning.Document{}, fmt.Errorf("document exceeds %d bytes", a.maxBodySize)
	}

	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return cleaning.Document{}, err
	}

	a.logger.Debug("fetched document",
		zap.String("url", url),
		zap.Int("bytes", len(data)),
		zap.Int("pages", len(doc.Pages)),
	)

	return doc, nil
}
