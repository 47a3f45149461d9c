package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	require.Equal(t, []string{"one two", "three", "four five"}, lines)

	// Words longer than the width land on their own line.
	lines = wrapText("supercalifragilistic ok", 10)
	require.Equal(t, []string{"supercalifragilistic", "ok"}, lines)

	// Blank paragraphs survive as empty lines.
	lines = wrapText("a\n\nb", 10)
	require.Equal(t, []string{"a", "", "b"}, lines)
}

func TestRenderProducesValidStructure(t *testing.T) {
	r := NewPlainPDFRenderer()

	pdf, err := r.Render("Session Transcript", "hello world")
	require.NoError(t, err)

	out := string(pdf)
	require.True(t, strings.HasPrefix(out, "%PDF-1.4"))
	require.Contains(t, out, "/Type /Catalog")
	require.Contains(t, out, "/Count 1")
	require.Contains(t, out, "(hello world) Tj")
	require.Contains(t, out, "%%EOF")
}

func TestRenderEscapesDelimiters(t *testing.T) {
	r := NewPlainPDFRenderer()

	pdf, err := r.Render("", `mentor (notes) \ raw`)
	require.NoError(t, err)
	require.Contains(t, string(pdf), `mentor \(notes\) \\ raw`)
}

func TestRenderPaginatesLongTranscripts(t *testing.T) {
	r := NewPlainPDFRenderer()

	// Force more lines than fit on one page.
	body := strings.TrimSpace(strings.Repeat("line of transcript text\n", pdfLinesPerPage+10))
	pdf, err := r.Render("Title", body)
	require.NoError(t, err)
	require.Contains(t, string(pdf), "/Count 2")
}
