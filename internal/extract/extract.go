package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"projectdocs-backend/internal/shared/storage/object"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeDOC  = "application/msword"
)

// ErrUnsupportedFormat is returned for content types the extractor cannot handle.
// Legacy .doc is deliberately included: it is accepted at upload but has no
// safe extraction path, so it is rejected here instead of being misparsed.
var ErrUnsupportedFormat = errors.New("unsupported content type")

// ExtractionError reports a failure while reading a document, with the
// offending PDF page when the reader can identify one.
type ExtractionError struct {
	Page int
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("extraction failed at page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("extraction failed: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Text pulls plain text from a stored object based on its declared content type.
// Libraries used: github.com/ledongthuc/pdf (PDF); DOCX is read directly from
// the OOXML package.
func Text(ctx context.Context, store object.ObjectStore, storageKey string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s type=%s: %w", storageKey, contentType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s type=%s: read: %w", storageKey, contentType, err)
	}

	return FromBytes(ctx, raw, contentType)
}

// FromBytes extracts text from an in-memory payload.
func FromBytes(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch normalizeContentType(contentType) {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX:
		return extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, contentType)
	}
}

// extractPDF reads every page in order and joins page text with a line break.
func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	var buf strings.Builder
	for page := 1; page <= pdfReader.NumPage(); page++ {
		p := pdfReader.Page(page)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", &ExtractionError{Page: page, Err: err}
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(pageText)
	}
	return buf.String(), nil
}

// extractDOCX reads word/document.xml and emits one line per paragraph of
// visible character data. Non-text elements degrade to whatever inline text
// they carry.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &ExtractionError{Err: errors.New("empty docx data")}
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", &ExtractionError{Err: errors.New("document.xml file not found")}
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", &ExtractionError{Err: err}
	}

	text, err := stripDocxXML(raw)
	if err != nil {
		return "", &ExtractionError{Err: err}
	}
	return text, nil
}

func stripDocxXML(raw []byte) (string, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func normalizeContentType(contentType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}
