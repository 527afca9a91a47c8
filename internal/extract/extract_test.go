package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesDocxParagraphPerLine(t *testing.T) {
	const docXML = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>Project Alpha</w:t></w:r></w:p><w:p><w:r><w:t>Duration: </w:t></w:r><w:r><w:t>6 months</w:t></w:r></w:p></w:body></w:document>`

	got, err := FromBytes(context.Background(), buildDocx(t, docXML), MimeDOCX)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 paragraph lines, got %d: %q", len(lines), got)
	}
	if lines[0] != "Project Alpha" {
		t.Fatalf("line 0 = %q", lines[0])
	}
	if lines[1] != "Duration: 6 months" {
		t.Fatalf("expected runs concatenated within a paragraph, got %q", lines[1])
	}
}

func TestFromBytesDocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, _ := zw.Create("word/other.xml")
	_, _ = f.Write([]byte("<x/>"))
	_ = zw.Close()

	_, err := FromBytes(context.Background(), buf.Bytes(), MimeDOCX)
	if err == nil {
		t.Fatalf("expected error for docx without document.xml")
	}
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
	}
}

func TestFromBytesLegacyDocRejected(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte{0xD0, 0xCF, 0x11, 0xE0}, MimeDOC)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat for legacy .doc, got %v", err)
	}
}

func TestFromBytesUnknownTypeRejected(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("hello"), "text/plain")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFromBytesMalformedPDF(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("not a pdf"), MimePDF)
	if err == nil {
		t.Fatalf("expected error for malformed pdf")
	}
	var ee *ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected *ExtractionError, got %T: %v", err, err)
	}
}

func TestFromBytesNormalizesContentType(t *testing.T) {
	const docXML = `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:p><w:r><w:t>hi</w:t></w:r></w:p></w:body></w:document>`
	got, err := FromBytes(context.Background(), buildDocx(t, docXML), "Application/VND.OPENXMLFORMATS-officedocument.wordprocessingml.document; charset=utf-8")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if got != "hi" {
		t.Fatalf("expected %q, got %q", "hi", got)
	}
}
