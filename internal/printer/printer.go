// Package printer writes colored terminal output for the contenthub CLI.
package printer

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"content-hub/internal/domain"
	"content-hub/internal/store"
)

func init() {
	// Users can disable colors with NO_COLOR.
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
	faint  = color.New(color.Faint)
)

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput redirects regular and error output. Nil keeps the current writer.
func SetOutput(stdout, stderr io.Writer) {
	if stdout != nil {
		out = stdout
	}
	if stderr != nil {
		errOut = stderr
	}
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(out, msg)
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// Warning prints a warning message in yellow
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(out, msg)
}

// Error prints a formatted error with title, explanation and suggestions to
// the error output and returns an error carrying only the title, for Cobra.
func Error(title string, explanation string, suggestions []string) error {
	red.Fprintf(errOut, "%s\n\n", title)
	if explanation != "" {
		fmt.Fprintf(errOut, "%s\n", explanation)
	}

	if len(suggestions) > 0 {
		fmt.Fprintf(errOut, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(errOut, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(errOut, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(errOut, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	return fmt.Errorf("%s", title)
}

// FieldErrors prints one line per invalid field and returns an error for Cobra.
func FieldErrors(title string, fields []domain.FieldError) error {
	red.Fprintf(errOut, "%s\n\n", title)
	for _, f := range fields {
		fmt.Fprintf(errOut, "  %s: %s\n", f.Field, f.Reason)
	}
	return fmt.Errorf("%s", title)
}

// Step prints a step message with emphasis
func Step(format string, a ...any) {
	cyan.Fprintf(out, "→ %s", fmt.Sprintf(format, a...))
}

// Println prints a plain message
func Println(a ...any) {
	fmt.Fprintln(out, a...)
}

// Printf prints a plain formatted message
func Printf(format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}

// Status returns the status label colored by lifecycle stage.
func Status(s domain.Status) string {
	return statusColor(s).Sprint(s)
}

func statusColor(s domain.Status) *color.Color {
	switch s {
	case domain.StatusRequested:
		return yellow
	case domain.StatusInProgress:
		return cyan
	case domain.StatusPublished:
		return green
	}
	return color.New(color.Reset)
}

// Items prints items as an aligned table, newest first as given.
func Items(items []domain.ContentItem) {
	if len(items) == 0 {
		faint.Fprintln(out, "No content found")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCATEGORY\tTITLE\tCREATED")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			shortID(item.ID),
			Status(item.Status()),
			item.Category,
			item.Title,
			item.CreatedAt.Format("2006-01-02"))
	}
	_ = w.Flush()
}

// Counts prints the per-status totals.
func Counts(c store.Counts) {
	fmt.Fprintf(out, "%-12s %d\n", "all", c.All)
	for _, s := range domain.ValidStatuses {
		label := statusColor(s).Sprintf("%-12s", s)
		fmt.Fprintf(out, "%s %d\n", label, c.For(domain.Filter(s)))
	}
}

// Guides prints published guides with their slugs.
func Guides(items []domain.ContentItem) {
	if len(items) == 0 {
		faint.Fprintln(out, "No guides published yet")
		return
	}
	for _, item := range items {
		fmt.Fprintf(out, "%s  %s\n", green.Sprint(item.Slug()), item.Title)
		author := item.Author()
		if author == "" {
			author = "Anonymous"
		}
		faint.Fprintf(out, "    %s · %s\n", item.Category, author)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
