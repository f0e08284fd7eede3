package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrFileTooLarge = errors.New("file is too large")

// FileAPI downloads uploaded spreadsheets, such as Telegram documents, by
// their direct URL.
type FileAPI struct {
	http    *http.Client
	maxSize int64
}

func NewFileAPI(httpClient *http.Client, maxSize int64) *FileAPI {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FileAPI{
		http:    httpClient,
		maxSize: maxSize,
	}
}

func (f *FileAPI) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file: unexpected status %s", resp.Status)
	}

	if f.maxSize > 0 && resp.ContentLength > f.maxSize {
		return nil, ErrFileTooLarge
	}

	body := io.Reader(resp.Body)
	if f.maxSize > 0 {
		body = io.LimitReader(resp.Body, f.maxSize+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if f.maxSize > 0 && int64(len(data)) > f.maxSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
