package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"tokenlistConverter/internal/model"
	"tokenlistConverter/internal/schema"
)

// ErrFetch marks any failure to obtain a valid token list.
var ErrFetch = errors.New("fetch token list")

const maxLoggedViolations = 20

// Fetcher retrieves a token list, parses it and validates it against the schema.
type Fetcher struct {
	client    *http.Client
	validator schema.Validator
	logger    *zap.Logger
}

// NewFetcher builds a Fetcher. A nil client falls back to http.DefaultClient.
func NewFetcher(client *http.Client, validator schema.Validator, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client:    client,
		validator: validator,
		logger:    logger,
	}
}

// Fetch loads source (http(s) URL, file:// URL or local path) and returns the
// validated document. Every failure wraps ErrFetch; schema failures also wrap
// *schema.ValidationError.
func (f *Fetcher) Fetch(ctx context.Context, source string) (model.SourceList, error) {
	if f.validator == nil {
		return model.SourceList{}, fmt.Errorf("%w: validator is nil", ErrFetch)
	}

	body, err := f.read(ctx, source)
	if err != nil {
		f.logger.Warn("token list read failed", zap.String("source", source), zap.Error(err))
		return model.SourceList{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	doc, err := schema.ParseDocument(bytes.NewReader(body))
	if err != nil {
		f.logger.Warn("token list is not json", zap.String("source", source), zap.Error(err))
		return model.SourceList{}, fmt.Errorf("%w: parse json: %w", ErrFetch, err)
	}

	if err := f.validator.Validate(doc); err != nil {
		f.logViolations(source, err)
		return model.SourceList{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var list model.SourceList
	if err := json.Unmarshal(body, &list); err != nil {
		f.logger.Warn("token list decode failed", zap.String("source", source), zap.Error(err))
		return model.SourceList{}, fmt.Errorf("%w: decode list: %w", ErrFetch, err)
	}

	f.logger.Debug("token list fetched", zap.String("source", source), zap.Int("tokens", len(list.Tokens)))
	return list, nil
}

func (f *Fetcher) read(ctx context.Context, source string) ([]byte, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("source is empty")
	}

	parsed, err := url.Parse(source)
	if err == nil {
		switch parsed.Scheme {
		case "http", "https":
			return f.get(ctx, source)
		case "file":
			return os.ReadFile(parsed.Path)
		}
	}
	return os.ReadFile(source)
}

func (f *Fetcher) get(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (f *Fetcher) logViolations(source string, err error) {
	violations := schema.Violations(err)
	if len(violations) == 0 {
		f.logger.Warn("token list validation failed", zap.String("source", source), zap.Error(err))
		return
	}

	f.logger.Warn("token list failed schema validation",
		zap.String("source", source),
		zap.Int("violations", len(violations)),
	)
	for i, violation := range violations {
		if i >= maxLoggedViolations {
			f.logger.Warn("further violations omitted", zap.Int("omitted", len(violations)-i))
			break
		}
		f.logger.Warn("schema violation",
			zap.String("path", violation.InstancePath),
			zap.String("keyword", violation.Keyword),
			zap.String("message", violation.Message),
		)
	}
}
