package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	errPDFOpen  = errors.New("failed to open PDF")
	errPDFPanic = errors.New("PDF reader panicked")
)

// loaderFailure matches reader initialisation errors raised by the font and
// decoder layer rather than by the document itself.
var loaderFailure = regexp.MustCompile(`(?i)\b(font|worker|loader|decoder)\b`)

// isPDFLoaderError reports whether err comes from initialising the reader's
// own machinery.
func isPDFLoaderError(err error) bool {
	return errors.Is(err, errPDFOpen) && loaderFailure.MatchString(err.Error())
}

// extractPDF reads pages 1..N in order. Each page's words are joined with
// single spaces and pages are separated by a blank line.
func extractPDF(ctx context.Context, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPDFPanic, r)
		}
	}()

	rdr, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errPDFOpen, err)
	}

	n := rdr.NumPage()
	pages := make([]string, 0, n)

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := rdr.Page(i)
		if page.V.IsNull() {
			continue
		}

		raw, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}

		pages = append(pages, strings.Join(strings.Fields(raw), " "))
	}

	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}
