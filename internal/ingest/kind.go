package ingest

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is the extraction strategy for a file.
type Kind string

const (
	KindText Kind = "text"
	KindPDF  Kind = "pdf"
	KindDocx Kind = "docx"
	KindDoc  Kind = "doc"
)

// sniffLimit is how much of a file is inspected when no type was declared.
const sniffLimit = 3 * 1024

var kindsByExtension = map[string]Kind{
	".pdf":  KindPDF,
	".docx": KindDocx,
	".doc":  KindDoc,
	".txt":  KindText,
	".md":   KindText,
	".csv":  KindText,
}

var kindsByMIME = map[string]Kind{
	"application/pdf":    KindPDF,
	"application/x-pdf":  KindPDF,
	"application/msword": KindDoc,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": KindDocx,
}

// resolveKind picks a kind from the extension and the declared MIME type.
// PDF wins over Word, which wins over text, whichever of the two names it.
// Between two Word kinds the declared type decides.
func resolveKind(name, declared string) (Kind, bool) {
	byExt, extOK := kindsByExtension[strings.ToLower(filepath.Ext(name))]
	byMIME, mimeOK := kindForMIME(declared)

	switch {
	case byMIME == KindPDF || byExt == KindPDF:
		return KindPDF, true
	case isWord(byMIME):
		return byMIME, true
	case isWord(byExt):
		return byExt, true
	case mimeOK || extOK:
		return KindText, true
	}

	return "", false
}

func isWord(k Kind) bool {
	return k == KindDocx || k == KindDoc
}

func kindForMIME(value string) (Kind, bool) {
	if value == "" {
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(value))
	}

	if k, ok := kindsByMIME[mediaType]; ok {
		return k, true
	}
	if strings.HasPrefix(mediaType, "text/") {
		return KindText, true
	}

	return "", false
}

// sniffKind detects the kind from content, walking up the detected type's
// parents so that e.g. text/csv resolves through text/plain.
func sniffKind(data []byte) (Kind, bool) {
	if len(data) == 0 {
		return "", false
	}

	head := data
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}

	for m := mimetype.Detect(head); m != nil; m = m.Parent() {
		if k, ok := kindForMIME(m.String()); ok {
			return k, true
		}
	}

	return "", false
}

// typeLabel names an unsupported file type for the user.
func typeLabel(name, declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	if len(data) > 0 {
		head := data
		if len(head) > sniffLimit {
			head = head[:sniffLimit]
		}
		return mimetype.Detect(head).String()
	}
	if ext := filepath.Ext(name); ext != "" {
		return strings.TrimPrefix(strings.ToLower(ext), ".")
	}
	return "unknown"
}
