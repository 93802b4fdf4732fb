package tui

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-signup/pkg/orchestrator"
)

// ContentType reports the media type produced by FormatOutcome for format.
func ContentType(format OutputFormat) string {
	switch format {
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// FormatOutcome serializes a submission outcome for printing.
func FormatOutcome(outcome orchestrator.Outcome, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatPrettyText:
		return []byte(prettyOutcome(outcome)), nil
	case OutputFormatJSON, "":
		out, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode outcome: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("tui: unsupported output format %q", format)
	}
}

func prettyOutcome(outcome orchestrator.Outcome) string {
	var b strings.Builder
	fmt.Fprintf(&b, "submission: %s\n", outcome.ID)
	fmt.Fprintf(&b, "status:     %s\n", outcome.Status)
	fmt.Fprintf(&b, "size hint:  %d\n", outcome.SizeHint)
	if outcome.Record != nil {
		fmt.Fprintf(&b, "name:       %s %s\n", outcome.Record.FirstName, outcome.Record.LastName)
		fmt.Fprintf(&b, "email:      %s\n", outcome.Record.Email)
		fmt.Fprintf(&b, "thumbnail:  %s\n", outcome.Record.ThumbnailURL)
	}
	if outcome.Result.StatusCode != 0 {
		fmt.Fprintf(&b, "response:   %d\n", outcome.Result.StatusCode)
	}
	return b.String()
}
