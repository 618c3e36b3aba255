package ingest

import (
	"bytes"
	"log/slog"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText reads data as UTF-8. Invalid sequences become U+FFFD.
func decodeText(data []byte, logger *slog.Logger) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	logger.Warn("File is not valid UTF-8, replacing invalid bytes")
	return string(bytes.ToValidUTF8(data, []byte("�")))
}
