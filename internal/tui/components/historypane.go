package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HistoryEntry is one submitted prompt shown in the pane.
type HistoryEntry struct {
	Body        string
	SubmittedAt time.Time
}

// HistoryPaneComponent renders the pane above the input: the latest
// refined prompt, if any, followed by recently submitted prompts.
type HistoryPaneComponent struct {
	entries []HistoryEntry
	refined string
	height  int
	width   int
}

// NewHistoryPaneComponent creates a new history pane
func NewHistoryPaneComponent(entries []HistoryEntry, refined string, height, width int) *HistoryPaneComponent {
	return &HistoryPaneComponent{
		entries: entries,
		refined: refined,
		height:  height,
		width:   width,
	}
}

var (
	paneHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	paneTimeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	paneDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// Render renders the pane clipped to its height, newest entries first.
func (p *HistoryPaneComponent) Render() string {
	if p.height <= 0 {
		return ""
	}

	var lines []string

	if p.refined != "" {
		lines = append(lines, paneHeaderStyle.Render("refined prompt")+paneTimeStyle.Render("  (ctrl+y to use)"))
		for _, l := range strings.Split(p.refined, "\n") {
			lines = append(lines, "  "+truncate(l, p.width-2))
		}
		lines = append(lines, "")
	}

	if len(p.entries) == 0 && p.refined == "" {
		lines = append(lines, paneDimStyle.Render("no prompts yet"))
	} else if len(p.entries) > 0 {
		lines = append(lines, paneHeaderStyle.Render("history"))
		for _, e := range p.entries {
			stamp := paneTimeStyle.Render(e.SubmittedAt.Local().Format("15:04"))
			body := firstLine(e.Body)
			lines = append(lines, fmt.Sprintf("  %s %s", stamp, truncate(body, p.width-10)))
		}
	}

	if len(lines) > p.height {
		lines = lines[:p.height]
	}
	for len(lines) < p.height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
