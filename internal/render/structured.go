package render

import (
	"encoding/json"
	"fmt"
	"io"

	v1 "github.com/aevon-lab/diarystats/internal/api/v1"
	"gopkg.in/yaml.v3"
)

// JSON renders the report as the same document the HTTP API returns.
type JSON struct {
	Indent bool
}

func (r JSON) Render(w io.Writer, report v1.Report) error {
	enc := json.NewEncoder(w)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode json report: %w", err)
	}
	return nil
}

// YAML renders the report with the yaml tags of the v1 types.
type YAML struct{}

func (YAML) Render(w io.Writer, report v1.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml report: %w", err)
	}
	return nil
}
