package source

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// ErrSourceUnavailable is returned when a payload cannot be fetched.
var ErrSourceUnavailable = errors.New("source unavailable")

// Source loads a raw JSON payload from a file or a network address.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	Describe() string
}

//go:embed countries.json
var countriesJSON []byte

// Countries returns the bundled code -> country name file.
func Countries() Source {
	return BytesSource{Name: "bundled countries.json", Data: countriesJSON}
}

// FileSource reads a local file.
type FileSource struct {
	Path string
}

func (fs FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, fs.Path, err)
	}
	b, err := os.ReadFile(fs.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return b, nil
}

func (fs FileSource) Describe() string { return "file " + fs.Path }

// WebSource issues a GET request against URL.
type WebSource struct {
	URL       string
	BasicAuth string // "user:pass", optional
	Client    *http.Client
}

func (ws WebSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ws.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if user, pass, ok := parseBasicAuthPair(ws.BasicAuth); ok {
		req.SetBasicAuth(user, pass)
	}
	client := ws.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrSourceUnavailable, ws.URL, err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: rates http %d: %s", ErrSourceUnavailable, resp.StatusCode, string(b))
	}
	return b, nil
}

func (ws WebSource) Describe() string { return "GET " + ws.URL }

// BytesSource serves an in-memory payload.
type BytesSource struct {
	Name string
	Data []byte
}

func (bs BytesSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, bs.Name, err)
	}
	if bs.Data == nil {
		return nil, fmt.Errorf("%w: %s is empty", ErrSourceUnavailable, bs.Name)
	}
	return bs.Data, nil
}

func (bs BytesSource) Describe() string { return bs.Name }

func parseBasicAuthPair(auth string) (username, password string, ok bool) {
	if auth == "" {
		return "", "", false
	}
	parts := strings.SplitN(auth, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}
