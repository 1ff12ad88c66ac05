// Package extraction turns uploaded resume documents into plain text. The
// conversion itself is an external collaborator reached over HTTP; this
// package owns format validation and text normalization.
package extraction

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Supported document formats.
const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
)

// UnsupportedFormatError indicates the uploaded document type cannot be
// converted to text.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type %q: upload PDF or DOCX", e.Format)
}

// FormatFromFilename derives the declared format from a filename extension.
// "doc" is treated as docx, matching what the conversion service accepts.
func FormatFromFilename(filename string) (string, error) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return "", &UnsupportedFormatError{Format: ""}
	}
	switch ext := strings.ToLower(filename[idx+1:]); ext {
	case "pdf":
		return FormatPDF, nil
	case "docx", "doc":
		return FormatDOCX, nil
	default:
		return "", &UnsupportedFormatError{Format: ext}
	}
}

// Extractor converts a document blob of a declared format into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte, format string) (string, error)
}

// HTTPExtractor posts documents to a text-extraction service and returns the
// plain-text body, normalized through CleanText.
type HTTPExtractor struct {
	endpoint string
	client   *http.Client
}

// NewHTTPExtractor creates an extractor for the given service endpoint.
func NewHTTPExtractor(endpoint string) *HTTPExtractor {
	return &HTTPExtractor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// Extract sends the blob with its declared format and reads back plain text.
// Unknown formats are rejected locally without a network call.
func (x *HTTPExtractor) Extract(ctx context.Context, data []byte, format string) (string, error) {
	if format != FormatPDF && format != FormatDOCX {
		return "", &UnsupportedFormatError{Format: format}
	}

	url := fmt.Sprintf("%s?format=%s", x.endpoint, format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := x.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read extraction response: %w", err)
	}

	return CleanText(string(body)), nil
}
