package transcript

import (
	"bytes"
	"fmt"
	"strings"
)

// PDFRenderer turns a transcript into a downloadable document.
type PDFRenderer interface {
	Render(title, body string) ([]byte, error)
}

// plainPDFRenderer emits a single-font PDF by hand. The transcript is plain
// text, so a full PDF library buys nothing here.
type plainPDFRenderer struct{}

// NewPlainPDFRenderer creates the default PDFRenderer.
func NewPlainPDFRenderer() PDFRenderer {
	return &plainPDFRenderer{}
}

const (
	pdfLineWidth    = 90 // characters per line at 10pt Courier on A4
	pdfLinesPerPage = 54
)

func (r *plainPDFRenderer) Render(title, body string) ([]byte, error) {
	lines := wrapText(body, pdfLineWidth)

	var pages [][]string
	for start := 0; start < len(lines) || start == 0; start += pdfLinesPerPage {
		end := start + pdfLinesPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}

	// Object layout: 1 catalog, 2 page tree, 3 font, then one page object and
	// one content stream per page.
	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	pageCount := len(pages)
	var kids []string
	for i := 0; i < pageCount; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+i*2))
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), pageCount))
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>")

	for i, pageLines := range pages {
		contentRef := 5 + i*2
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentRef))

		var content strings.Builder
		content.WriteString("BT /F1 10 Tf 50 800 Td 14 TL\n")
		if i == 0 && title != "" {
			content.WriteString(fmt.Sprintf("(%s) Tj T* T*\n", escapePDFText(title)))
		}
		for _, line := range pageLines {
			content.WriteString(fmt.Sprintf("(%s) Tj T*\n", escapePDFText(line)))
		}
		content.WriteString("ET")
		objects = append(objects, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream",
			len(content.String()), content.String()))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefStart := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(objects)+1, xrefStart)

	return buf.Bytes(), nil
}

func escapePDFText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}

// wrapText splits the text into lines no longer than width characters,
// breaking on word boundaries where possible.
func wrapText(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := words[0]
		for _, word := range words[1:] {
			if len(current)+1+len(word) <= width {
				current += " " + word
				continue
			}
			lines = append(lines, current)
			current = word
		}
		lines = append(lines, current)
	}
	return lines
}
