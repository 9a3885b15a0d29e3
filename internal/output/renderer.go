package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atikulmunna/hitcount/internal/model"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Renderer writes a finalized report to an output stream.
type Renderer interface {
	Render(w io.Writer, r model.Report) error
}

// ForFormat returns the Renderer for a format name: text, json or yaml.
// color only affects the text format.
func ForFormat(format string, color bool) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return NewTextRenderer(color), nil
	case "json":
		return NewJSONRenderer(), nil
	case "yaml", "yml":
		return NewYAMLRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer
// ---------------------------------------------------------------------------

var (
	styleIP     = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))  // cyan
	styleURL    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")) // gray
	styleSecret = lipgloss.NewStyle().Foreground(lipgloss.Color("220")) // yellow
	styleError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// TextRenderer prints the line-oriented report:
//
//	IP: <ip>, Total Hits: <n>, Secret Hits: <m>
//	URL: <url>, Number of Hits: <n>
//	Total Errors: <n>
type TextRenderer struct {
	color bool
}

// NewTextRenderer returns a TextRenderer. With color set the labels are
// styled for a terminal; otherwise the output is the exact plain format.
func NewTextRenderer(color bool) *TextRenderer {
	return &TextRenderer{color: color}
}

func (t *TextRenderer) Render(w io.Writer, r model.Report) error {
	var b strings.Builder

	for _, s := range r.IPs {
		fmt.Fprintf(&b, "%s %s, %s %d, %s %d\n",
			t.style(styleIP, "IP:"), s.IP,
			t.style(styleIP, "Total Hits:"), s.Total,
			t.style(styleSecret, "Secret Hits:"), s.Secret)
	}
	for _, s := range r.URLs {
		fmt.Fprintf(&b, "%s %s, %s %d\n",
			t.style(styleURL, "URL:"), s.URL,
			t.style(styleURL, "Number of Hits:"), s.Hits)
	}
	fmt.Fprintf(&b, "%s %d\n", t.style(styleError, "Total Errors:"), r.Errors)

	_, err := io.WriteString(w, b.String())
	return err
}

func (t *TextRenderer) style(s lipgloss.Style, label string) string {
	if !t.color {
		return label
	}
	return s.Render(label)
}

// ---------------------------------------------------------------------------
// JSON Renderer
// ---------------------------------------------------------------------------

// JSONRenderer prints each report as a single JSON object per line.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (JSONRenderer) Render(w io.Writer, r model.Report) error {
	return json.NewEncoder(w).Encode(r)
}

// ---------------------------------------------------------------------------
// YAML Renderer
// ---------------------------------------------------------------------------

// YAMLRenderer prints each report as its own YAML document.
type YAMLRenderer struct{}

func NewYAMLRenderer() *YAMLRenderer { return &YAMLRenderer{} }

func (YAMLRenderer) Render(w io.Writer, r model.Report) error {
	raw, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}
