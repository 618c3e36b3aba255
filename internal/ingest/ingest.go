// Package ingest turns an uploaded file into plain text for reformulation.
//
// Ingest never fails: every problem is reported as a localized message in
// the returned Result.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/alkime/jailu/internal/locale"
)

// MaxFileSize is the largest accepted file, in bytes.
const MaxFileSize = 10 * 1024 * 1024

// File is a file handle to ingest.
type File struct {
	Name string
	// MIME is the declared media type; empty when unknown.
	MIME string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Result is the outcome of an ingestion.
type Result struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
	Error   string `json:"error,omitempty"`
}

func success(text string) Result {
	return Result{Success: true, Text: text}
}

func failure(msg string) Result {
	return Result{Success: false, Error: msg}
}

// Funnel extracts text from files, reporting failures in one language.
type Funnel struct {
	messages locale.Messages
	logger   *slog.Logger
}

// NewFunnel creates a funnel reporting in lang. A nil logger uses slog.Default().
func NewFunnel(lang locale.Language, logger *slog.Logger) *Funnel {
	if logger == nil {
		logger = slog.Default()
	}

	return &Funnel{
		messages: lang.Messages(),
		logger:   logger,
	}
}

var errTooLarge = errors.New("file exceeds size limit")

// Ingest checks the size and the type of f, then extracts its text.
func (fn *Funnel) Ingest(ctx context.Context, f File) Result {
	logger := fn.logger.With("file", f.Name, "size", f.Size)

	if f.Size > MaxFileSize {
		logger.Info("File rejected: too large")
		return failure(fn.messages.FileTooLarge(f.Name))
	}

	kind, ok := resolveKind(f.Name, f.MIME)

	// Content is only sniffed for bare names with no declared type.
	sniff := !ok && f.MIME == "" && filepath.Ext(f.Name) == ""
	if !ok && !sniff {
		label := typeLabel(f.Name, f.MIME, nil)
		logger.Info("File rejected: unsupported type", "type", label)
		return failure(fn.messages.FileUnsupported(label))
	}

	data, err := readAll(f)
	switch {
	case errors.Is(err, errTooLarge):
		logger.Info("File rejected: too large")
		return failure(fn.messages.FileTooLarge(f.Name))
	case err != nil:
		logger.Error("Failed to read file", "error", err)
		return failure(fn.unreadable(kind))
	}

	if sniff {
		if kind, ok = sniffKind(data); !ok {
			label := typeLabel(f.Name, f.MIME, data)
			logger.Info("File rejected: unsupported type", "type", label)
			return failure(fn.messages.FileUnsupported(label))
		}
	}

	if err := ctx.Err(); err != nil {
		return failure(fn.unreadable(kind))
	}

	logger = logger.With("kind", kind)

	var text string
	switch kind {
	case KindPDF:
		text, err = extractPDF(ctx, data)
	case KindDocx, KindDoc:
		text, err = extractWord(data, logger)
	default:
		text = decodeText(data, logger)
	}

	if err != nil {
		logger.Error("Text extraction failed", "error", err)
		if kind == KindPDF && isPDFLoaderError(err) {
			return failure(fn.messages.PDFWorker)
		}
		return failure(fn.unreadable(kind))
	}

	logger.Debug("File ingested", "length", len(text))

	return success(text)
}

func (fn *Funnel) unreadable(k Kind) string {
	switch k {
	case KindPDF:
		return fn.messages.PDFUnreadable
	case KindDocx, KindDoc:
		return fn.messages.DocUnreadable
	default:
		return fn.messages.TextUnreadable
	}
}

// readAll reads at most MaxFileSize bytes, so a wrong declared size cannot
// bypass the limit.
func readAll(f File) ([]byte, error) {
	if f.Open == nil {
		return nil, errors.New("file has no content accessor")
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, errTooLarge
	}

	return data, nil
}

// FromPath describes a file on disk.
func FromPath(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}

	return File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path) //nolint:gosec // Path chosen by the user
		},
	}, nil
}

// FromMultipart describes an uploaded form file.
func FromMultipart(fh *multipart.FileHeader) File {
	return File{
		Name: fh.Filename,
		MIME: fh.Header.Get("Content-Type"),
		Size: fh.Size,
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// FromBytes describes in-memory content.
func FromBytes(name, mimeType string, data []byte) File {
	return File{
		Name: name,
		MIME: mimeType,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
