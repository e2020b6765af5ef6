package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

// MaxFileSize caps uploads at 10 MiB.
const MaxFileSize = 10 << 20

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeDOC  = "application/msword"
)

// Extract pulls readable text from an uploaded resume. PDF output includes a
// trailing listing of link annotations with their anchor text.
func Extract(data []byte, contentType string, fileName string) (string, error) {
	if len(data) > MaxFileSize {
		return "", fmt.Errorf("%w (%d MB)", ErrTooLarge, MaxFileSize/1024/1024)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	switch detectType(contentType, fileName) {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimeDOC:
		return extractDOC(data)
	case "text/plain", "text/markdown":
		return decodeText(data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
}

func detectType(contentType, fileName string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch clean {
	case mimePDF, mimeDOCX, mimeDOC, "text/plain", "text/markdown":
		return clean
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return mimePDF
	case ".docx":
		return mimeDOCX
	case ".doc":
		return mimeDOC
	case ".md":
		return "text/markdown"
	case ".txt":
		return "text/plain"
	}
	return clean
}

// extractPDF concatenates per-page plain text, then appends a human-readable
// listing of every link annotation with its recovered anchor words.
func extractPDF(data []byte) (text string, err error) {
	// The pdf package panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("%w: pdf: %v", ErrParse, rec)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrParse, err)
	}

	var buf strings.Builder
	var links []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, textErr := page.GetPlainText(nil)
		if textErr == nil {
			buf.WriteString(pageText)
			buf.WriteString("\n")
		}
		links = append(links, pageLinks(page, i)...)
	}

	out := buf.String()
	if len(links) > 0 {
		out += "\n\nHyperlinks found in PDF:\n" + strings.Join(links, "\n")
	}
	return out, nil
}

// pageLinks walks the page's Annots array and recovers, for each URI link,
// the words covered by its rectangle as anchor text.
func pageLinks(page pdf.Page, pageNum int) []string {
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil
	}

	var content pdf.Content
	contentLoaded := false

	var out []string
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}
		uri := annot.Key("A").Key("URI")
		if uri.Kind() != pdf.String {
			continue
		}

		if !contentLoaded {
			content = page.Content()
			contentLoaded = true
		}

		anchor := anchorText(content, annot.Key("Rect"))
		out = append(out, fmt.Sprintf("Page %d: '%s' -> %s", pageNum, anchor, uri.RawString()))
	}
	return out
}

func anchorText(content pdf.Content, rect pdf.Value) string {
	if rect.Kind() != pdf.Array || rect.Len() != 4 {
		return ""
	}
	x0, y0 := rect.Index(0).Float64(), rect.Index(1).Float64()
	x1, y1 := rect.Index(2).Float64(), rect.Index(3).Float64()
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	var buf strings.Builder
	for _, t := range content.Text {
		if t.X >= x0 && t.X+t.W <= x1 && t.Y >= y0 && t.Y <= y1 {
			buf.WriteString(t.S)
		}
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrParse, err)
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
		return "", fmt.Errorf("%w: docx: document.xml not found", ErrParse)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrParse, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrParse, err)
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
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
	return strings.TrimSpace(buf.String())
}

// decodeText decodes UTF-8, falling back to Latin-1 for legacy exports.
func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: text: %v", ErrParse, err)
	}
	return string(decoded), nil
}
