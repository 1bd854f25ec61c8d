// Package extract pulls raw text out of uploaded resumes and guesses
// contact fields from it. Everything here is best-effort: the guesses
// prefill the candidate's profile form and are never authoritative.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType is returned for anything other than PDF or DOCX.
var ErrUnsupportedType = errors.New("unsupported document type")

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Text extracts plain text from a PDF or DOCX document. The format is
// picked by MIME type, falling back to the filename extension because some
// browsers upload DOCX files with a generic content type.
func Text(data []byte, mimeType, filename string) (string, error) {
	switch {
	case mimeType == mimePDF || strings.HasSuffix(strings.ToLower(filename), ".pdf"):
		return pdfText(data)
	case mimeType == mimeDOCX || strings.HasSuffix(strings.ToLower(filename), ".docx"):
		return docxText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	var out strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			continue // Skip unreadable pages, keep what we have
		}
		for _, row := range rows {
			for _, word := range row.Content {
				out.WriteString(word.S)
				out.WriteByte(' ')
			}
			out.WriteByte('\n')
		}
	}
	return out.String(), nil
}

// docxText unzips the document and walks word/document.xml, collecting
// <w:t> runs and turning paragraph ends into newlines.
func docxText(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var doc *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			doc = f
			break
		}
	}
	if doc == nil {
		return "", fmt.Errorf("docx: missing word/document.xml")
	}

	rc, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	var (
		out     strings.Builder
		decoder = xml.NewDecoder(rc)
		inText  bool
	)
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				out.Write(t)
			}
		}
	}
	return out.String(), nil
}
