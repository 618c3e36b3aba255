package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf16"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

	errNoDocumentPart = errors.New("word/document.xml not found")
	errNoText         = errors.New("no text found in legacy Word document")
)

// minRunLength is the shortest printable run kept from a legacy .doc file.
const minRunLength = 4

// extractWord dispatches on content rather than extension: .doc files saved
// as OOXML are common.
func extractWord(data []byte, logger *slog.Logger) (string, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return extractDocx(data, logger)
	case bytes.HasPrefix(data, oleMagic):
		logger.Warn("Legacy binary Word document, recovering printable text only")
		return extractLegacyDoc(data)
	default:
		return "", errors.New("not a Word document")
	}
}

// skippedElements hold content that is not part of the running text.
var skippedElements = map[string]bool{
	"drawing":   true,
	"object":    true,
	"pict":      true,
	"instrText": true,
	"delText":   true,
}

// extractDocx returns the raw text of word/document.xml: one line per
// paragraph, with tabs and breaks kept.
func extractDocx(data []byte, logger *slog.Logger) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			part = f
			break
		}
	}
	if part == nil {
		return "", errNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document part: %w", err)
	}
	defer rc.Close()

	var (
		sb      strings.Builder
		inText  bool
		skipped = map[string]int{}
		depth   int
	)

	dec := xml.NewDecoder(rc)
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document part: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
				continue
			}
			switch name := t.Name.Local; {
			case skippedElements[name]:
				skipped[name]++
				depth = 1
			case name == "t":
				inText = true
			case name == "tab":
				sb.WriteByte('\t')
			case name == "br", name == "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			if depth > 0 {
				depth--
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText && depth == 0 {
				sb.Write(t)
			}
		}
	}

	for name, count := range skipped {
		logger.Warn("Skipped non-text content in Word document", "element", name, "count", count)
	}

	return strings.TrimSpace(sb.String()), nil
}

// extractLegacyDoc recovers text from a binary .doc by scanning for runs of
// printable characters, both as UTF-16LE and as single bytes, and keeping
// whichever encoding yields more text.
func extractLegacyDoc(data []byte) (string, error) {
	wide := printableRuns(decodeUTF16LE(data))
	narrow := printableRuns([]rune(string(bytes.ToValidUTF8(data, []byte(" ")))))

	runs := narrow
	if runeCount(wide) >= runeCount(narrow) {
		runs = wide
	}
	if len(runs) == 0 {
		return "", errNoText
	}

	return strings.Join(runs, "\n"), nil
}

func decodeUTF16LE(data []byte) []rune {
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i]) | uint16(data[2*i+1])<<8
	}
	return utf16.Decode(units)
}

func printableRuns(rs []rune) []string {
	var (
		runs    []string
		current []rune
	)

	flush := func() {
		if s := strings.TrimSpace(string(current)); len([]rune(s)) >= minRunLength && hasLetter(s) {
			runs = append(runs, s)
		}
		current = current[:0]
	}

	for _, r := range rs {
		if r == '\r' || r == '\n' {
			flush()
			continue
		}
		if r == utf16Replacement || !unicode.IsPrint(r) {
			flush()
			continue
		}
		current = append(current, r)
	}
	flush()

	return runs
}

const utf16Replacement = '�'

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func runeCount(runs []string) int {
	n := 0
	for _, r := range runs {
		n += len([]rune(r))
	}
	return n
}
