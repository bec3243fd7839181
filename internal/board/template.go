package board

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/pkordes/departure-board/internal/domain"
)

// templateFS holds the board templates embedded at compile time.
//
//go:embed templates/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// RowHTML renders a single <tr> with six classed cells. All text is escaped
// by html/template.
func RowHTML(row domain.Row) (template.HTML, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "row", row); err != nil {
		return "", fmt.Errorf("board.RowHTML: %w", err)
	}
	// Safe: the buffer is html/template output, already escaped.
	return template.HTML(buf.String()), nil
}

// pageData is the input to the "page" template.
type pageData struct {
	Labels         domain.Labels
	Rows           []template.HTML
	RefreshSeconds int
}

// WritePage renders the full board page to w. The page asks the browser to
// reload itself every refresh.
func WritePage(w io.Writer, b domain.Board, refresh time.Duration) error {
	data := pageData{
		Labels:         b.Labels,
		Rows:           make([]template.HTML, 0, len(b.Rows)),
		RefreshSeconds: int(refresh / time.Second),
	}
	for _, row := range b.Rows {
		html, err := RowHTML(row)
		if err != nil {
			return fmt.Errorf("board.WritePage: %w", err)
		}
		data.Rows = append(data.Rows, html)
	}
	if err := tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("board.WritePage: %w", err)
	}
	return nil
}
