package render

import (
	"fmt"
	"io"
	"strings"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer writes a report in one presentation format.
type Renderer interface {
	Render(w io.Writer, report v1.Report) error
}

// For returns the renderer for a format name. Matching is case-insensitive.
func For(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatText, "":
		return Text{BarWidth: DefaultBarWidth}, nil
	case FormatJSON:
		return JSON{Indent: true}, nil
	case FormatYAML, "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}
