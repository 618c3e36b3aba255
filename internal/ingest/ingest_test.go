package ingest_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/alkime/jailu/internal/ingest"
	"github.com/alkime/jailu/internal/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFunnel() *ingest.Funnel {
	return ingest.NewFunnel(locale.French, nil)
}

func TestIngest_EmptyTextFile(t *testing.T) {
	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("empty.txt", "text/plain", nil))

	assert.True(t, result.Success)
	assert.Equal(t, "", result.Text)
	assert.Empty(t, result.Error)
}

func TestIngest_SizeLimit(t *testing.T) {
	big := make([]byte, 11*1024*1024)

	for _, name := range []string{"cgu.pdf", "contrat.docx", "contrat.doc", "notes.txt", "notes.md", "data.csv"} {
		t.Run(name, func(t *testing.T) {
			result := newFunnel().Ingest(context.Background(), ingest.FromBytes(name, "", big))

			assert.False(t, result.Success)
			assert.Empty(t, result.Text)
			assert.Contains(t, result.Error, name)
			assert.Contains(t, result.Error, "trop volumineux")
		})
	}
}

func TestIngest_SizeLimitIsCheckedBeforeType(t *testing.T) {
	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("setup.exe", "", make([]byte, 11*1024*1024)))

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "trop volumineux")
}

func TestIngest_UnderstatedSizeIsStillLimited(t *testing.T) {
	file := ingest.FromBytes("notes.txt", "", make([]byte, ingest.MaxFileSize+1))
	file.Size = 10

	result := newFunnel().Ingest(context.Background(), file)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "trop volumineux")
}

func TestIngest_UnsupportedType(t *testing.T) {
	tests := []struct {
		name     string
		file     ingest.File
		wantType string
	}{
		{
			name:     "declared mime",
			file:     ingest.FromBytes("setup.exe", "application/x-msdownload", []byte("MZ\x90\x00")),
			wantType: "application/x-msdownload",
		},
		{
			name: "sniffed executable",
			file: ingest.FromBytes("setup.exe", "", append([]byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00\x00\x00\xff\xff"),
				make([]byte, 64)...)),
		},
		{
			name:     "empty exe",
			file:     ingest.FromBytes("setup.exe", "", nil),
			wantType: "exe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newFunnel().Ingest(context.Background(), tt.file)

			assert.False(t, result.Success)
			assert.Contains(t, result.Error, "Type de fichier non supporté")
			if tt.wantType != "" {
				assert.Contains(t, result.Error, tt.wantType)
			}
		})
	}
}

func TestIngest_DeclaredTypePrecedence(t *testing.T) {
	pdf := buildPDF(t, "Article premier")
	notWord := []byte("plain text")

	tests := []struct {
		name    string
		file    ingest.File
		want    string
		wantErr string
	}{
		{name: "x-pdf without extension", file: ingest.FromBytes("upload", "application/x-pdf", pdf), want: "Article premier"},
		{name: "pdf mime over txt extension", file: ingest.FromBytes("cgu.txt", "application/pdf", pdf), want: "Article premier"},
		{name: "pdf extension over text mime", file: ingest.FromBytes("cgu.pdf", "text/plain", pdf), want: "Article premier"},
		{
			name:    "word mime over md extension",
			file:    ingest.FromBytes("notes.md", "application/msword", notWord),
			wantErr: locale.French.Messages().DocUnreadable,
		},
		{name: "text mime with unknown extension", file: ingest.FromBytes("cgu.html", "text/html", []byte("<p>x</p>")), want: "<p>x</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newFunnel().Ingest(context.Background(), tt.file)

			if tt.wantErr != "" {
				assert.False(t, result.Success)
				assert.Equal(t, tt.wantErr, result.Error)
				return
			}
			require.True(t, result.Success, result.Error)
			assert.Equal(t, tt.want, result.Text)
		})
	}
}

func TestIngest_UnsupportedExtensionIsNotRead(t *testing.T) {
	opened := false
	file := ingest.FromBytes("setup.exe", "", []byte("These terms of service govern your use."))
	open := file.Open
	file.Open = func() (io.ReadCloser, error) {
		opened = true
		return open()
	}

	result := newFunnel().Ingest(context.Background(), file)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "Type de fichier non supporté: exe")
	assert.False(t, opened)
}

func TestIngest_TextLike(t *testing.T) {
	tests := []struct {
		name string
		file ingest.File
		want string
	}{
		{name: "txt", file: ingest.FromBytes("cgu.txt", "", []byte("Article 1")), want: "Article 1"},
		{name: "md", file: ingest.FromBytes("cgu.md", "", []byte("# Titre\n\nCorps")), want: "# Titre\n\nCorps"},
		{name: "csv", file: ingest.FromBytes("data.csv", "", []byte("a,b\n1,2")), want: "a,b\n1,2"},
		{name: "text mime", file: ingest.FromBytes("clauses", "text/html; charset=utf-8", []byte("<p>x</p>")), want: "<p>x</p>"},
		{name: "sniffed", file: ingest.FromBytes("clauses", "", []byte("Le prestataire se réserve le droit.")), want: "Le prestataire se réserve le droit."},
		{name: "bom", file: ingest.FromBytes("bom.txt", "", []byte("\xEF\xBB\xBFBonjour")), want: "Bonjour"},
		{name: "invalid utf8", file: ingest.FromBytes("latin1.txt", "", []byte("caf\xe9")), want: "caf�"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := newFunnel().Ingest(context.Background(), tt.file)

			require.True(t, result.Success, result.Error)
			assert.Equal(t, tt.want, result.Text)
		})
	}
}

func TestIngest_OpenFailure(t *testing.T) {
	file := ingest.File{
		Name: "cgu.txt",
		Size: 3,
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("permission denied")
		},
	}

	result := newFunnel().Ingest(context.Background(), file)

	assert.False(t, result.Success)
	assert.Equal(t, locale.French.Messages().TextUnreadable, result.Error)
}

func TestIngest_LocalizedMessages(t *testing.T) {
	funnel := ingest.NewFunnel(locale.English, nil)

	result := funnel.Ingest(context.Background(), ingest.FromBytes("setup.exe", "application/x-msdownload", nil))

	assert.Contains(t, result.Error, "Unsupported file type")
}

func TestIngest_Docx(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Article 1.</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve"> Objet</w:t></w:r></w:p>
    <w:p><w:r><w:drawing><w:t>ignored caption</w:t></w:drawing></w:r><w:r><w:t>Le service est fourni</w:t><w:br/><w:t>tel quel.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	data := buildDocx(t, map[string]string{"word/document.xml": body})

	for _, name := range []string{"contrat.docx", "contrat.doc"} {
		t.Run(name, func(t *testing.T) {
			result := newFunnel().Ingest(context.Background(), ingest.FromBytes(name, "", data))

			require.True(t, result.Success, result.Error)
			assert.Equal(t, "Article 1.\t Objet\nLe service est fourni\ntel quel.", result.Text)
		})
	}
}

func TestIngest_DocxMissingDocumentPart(t *testing.T) {
	data := buildDocx(t, map[string]string{"word/styles.xml": "<styles/>"})

	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("contrat.docx", "", data))

	assert.False(t, result.Success)
	assert.Equal(t, locale.French.Messages().DocUnreadable, result.Error)
}

func TestIngest_LegacyDoc(t *testing.T) {
	var data bytes.Buffer
	data.Write([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	data.Write(make([]byte, 32))
	for _, unit := range utf16.Encode([]rune("Conditions générales d'utilisation")) {
		data.WriteByte(byte(unit))
		data.WriteByte(byte(unit >> 8))
	}
	data.Write(make([]byte, 32))

	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("ancien.doc", "", data.Bytes()))

	require.True(t, result.Success, result.Error)
	assert.Contains(t, result.Text, "Conditions générales d'utilisation")
}

func TestIngest_NotAWordDocument(t *testing.T) {
	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("contrat.docx", "", []byte("plain text")))

	assert.False(t, result.Success)
	assert.Equal(t, locale.French.Messages().DocUnreadable, result.Error)
}

func TestIngest_PDF(t *testing.T) {
	data := buildPDF(t, "Hello   World", "Second page")

	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("cgu.pdf", "", data))

	require.True(t, result.Success, result.Error)
	assert.Equal(t, "Hello World\n\nSecond page", result.Text)
}

func TestIngest_CorruptPDF(t *testing.T) {
	result := newFunnel().Ingest(context.Background(), ingest.FromBytes("cgu.pdf", "application/pdf", []byte("%PDF-1.4 garbage")))

	assert.False(t, result.Success)
	assert.Equal(t, locale.French.Messages().PDFUnreadable, result.Error)
}

func TestFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cgu.md")
	require.NoError(t, os.WriteFile(path, []byte("# CGU"), 0o600))

	file, err := ingest.FromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "cgu.md", file.Name)
	assert.Equal(t, int64(5), file.Size)

	result := newFunnel().Ingest(context.Background(), file)
	assert.True(t, result.Success)
	assert.Equal(t, "# CGU", result.Text)

	_, err = ingest.FromPath(filepath.Dir(path))
	assert.Error(t, err)
}

func TestFromPath_TextInUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.exe")
	require.NoError(t, os.WriteFile(path, []byte("These terms of service govern your use."), 0o600))

	file, err := ingest.FromPath(path)
	require.NoError(t, err)

	result := newFunnel().Ingest(context.Background(), file)

	assert.False(t, result.Success)
	assert.Empty(t, result.Text)
	assert.Contains(t, result.Error, "exe")
}

func buildDocx(t *testing.T, parts map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildPDF writes a minimal PDF with one Helvetica text line per page.
func buildPDF(t *testing.T, pages ...string) []byte {
	t.Helper()

	n := len(pages)
	fontObj := 3 + 2*n
	objects := make([]string, 0, fontObj)

	kids := make([]string, n)
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
