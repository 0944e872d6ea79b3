package renderer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/relperf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var htmlConverter = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML converts a markdown document to an HTML fragment.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := htmlConverter.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("cannot convert markdown to html: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders a markdown document for display in a terminal.
//
// width is the word wrap column, 0 disables wrapping.
func Terminal(markdown string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("cannot create terminal renderer: %w", err)
	}
	return r.Render(markdown)
}

// ErrorMessage returns a user facing message for err.
//
// When err is a fetch failure it names the ticker that could not be fetched.
func ErrorMessage(err error) string {
	var fetchErr *relperf.FetchError
	switch {
	case errors.As(err, &fetchErr) && errors.Is(err, relperf.ErrNoData):
		return fmt.Sprintf("No data returned for %s. Check the ticker symbol.", fetchErr.Ticker)
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("Failed to fetch data for %s: %v", fetchErr.Ticker, fetchErr.Err)
	case errors.Is(err, relperf.ErrReferenceNotFound):
		return fmt.Sprintf("Cannot normalize: %v", err)
	case errors.Is(err, relperf.ErrNotACandidate):
		return fmt.Sprintf("Invalid selection: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
