package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/immermex/dashboard-api/pkg/types"
)

// Upload sends a spreadsheet to the backend for processing and returns the
// processed/skipped row counts. The multipart writer supplies the
// content-type boundary; nothing is set by hand.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (*types.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("archivo", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finish upload form: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/upload", nil, buf.Bytes(), mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out types.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

// Template downloads the blank spreadsheet template as raw bytes.
func (c *Client) Template(ctx context.Context) ([]byte, string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/plantilla", nil, nil, "")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read template: %w", err)
	}
	return blob, resp.Header.Get("Content-Type"), nil
}
