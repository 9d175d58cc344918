// Package markdown renders task detail content as ANSI-styled terminal
// output.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"taskdeck/internal/display"
	"taskdeck/internal/domain"
)

// Render converts markdown to ANSI suitable for the terminal. On renderer
// failure the raw markdown is returned so the detail view always shows
// something.
func Render(content string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}

// TaskDocument builds the markdown body shown in the detail view.
func TaskDocument(task *domain.Task) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", task.Title)
	fmt.Fprintf(&b, "%s\n\n", task.Description)
	fmt.Fprintf(&b, "- **Topic:** %s\n", task.Topic)
	fmt.Fprintf(&b, "- **Priority:** %s\n", task.Priority)
	fmt.Fprintf(&b, "- **Status:** %s\n", task.Status)
	fmt.Fprintf(&b, "- **Owner:** %s\n", task.Owner)
	fmt.Fprintf(&b, "- **Created:** %s\n", task.CreatedOn)
	fmt.Fprintf(&b, "- **Due:** %s\n", display.FormatDue(task.Due))

	if len(task.Subtasks) > 0 {
		b.WriteString("\n## Subtasks\n\n")
		for _, st := range task.Subtasks {
			box := " "
			if st.Status == domain.StatusDone {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s\n", box, st.Text)
		}
	}

	if task.Notes != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(task.Notes)
		b.WriteString("\n")
	}

	return b.String()
}
