package sinks

import (
	"bytes"
	"encoding/json"

	"github.com/charmbracelet/lipgloss"

	"stacklog/internal/payload"
)

var severityStyles = map[string]lipgloss.Style{
	"DEBUG":    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	"INFO":     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	"WARNING":  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"WARN":     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	"ERROR":    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	"CRITICAL": lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
}

// Encoder serializes payloads either as compact single-line JSON or, for
// debugging, as indented JSON optionally preceded by a colored severity line.
type Encoder struct {
	Pretty bool
	Color  bool
}

// Encode returns the serialized payload without a trailing newline.
func (e Encoder) Encode(p payload.Payload) ([]byte, error) {
	var buf bytes.Buffer
	if e.Pretty && e.Color {
		style, ok := severityStyles[p.Severity]
		if !ok {
			style = lipgloss.NewStyle()
		}
		buf.WriteString(style.Bold(true).Render(p.Severity))
		buf.WriteByte('\n')
	}

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if e.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(p.ToMap()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
