package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/planwt/planwt/internal/worktree"
)

var (
	primaryColor   = lipgloss.Color("#5FAFAF") // teal accent
	secondaryColor = lipgloss.Color("#666666") // gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // muted sage
	warnColor      = lipgloss.Color("#D7AF5F") // muted amber
	errorColor     = lipgloss.Color("#AF5F5F") // muted terracotta

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(secondaryColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	warnStyle    = lipgloss.NewStyle().Foreground(warnColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
)

// Render renders a stage listing.
func (r *ListReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n\n",
		titleStyle.Render("Plan:"), r.PlanID, subtleStyle.Render("("+r.PlanStatus+")"))

	rows := make([][]string, 0, len(r.Stages))
	for _, st := range r.Stages {
		deps := strings.Join(st.DependsOn, ", ")
		if deps == "" {
			deps = "-"
		}
		rows = append(rows, []string{st.ID, st.Name, st.Status, st.Branch, deps})
	}
	b.WriteString(table([]string{"ID", "NAME", "STATUS", "BRANCH", "DEPENDS ON"}, rows))
	return b.String()
}

// Render renders a validation summary.
func (r *ValidateReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s plan %s: %d stage(s), dependency graph is valid\n",
		successStyle.Render("✓"), r.PlanID, r.StageCount)
	fmt.Fprintf(&b, "%s %s\n",
		subtleStyle.Render("setup order:"), strings.Join(r.SetupOrder, " -> "))
	return b.String()
}

// Render renders the drift report.
func (r *StatusReport) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s\n\n",
		titleStyle.Render("Plan:"), r.PlanID, subtleStyle.Render("("+r.PlanStatus+")"))

	rows := make([][]string, 0, len(r.Stages))
	for _, st := range r.Stages {
		checkout := "missing"
		if st.Present {
			checkout = st.LiveBranch
		}
		note := ""
		if st.Drift {
			note = warnStyle.Render("drift: " + st.DriftNote)
		}
		rows = append(rows, []string{st.ID, st.Status, checkout, st.Path, note})
	}
	b.WriteString(table([]string{"STAGE", "STATUS", "CHECKOUT", "PATH", ""}, rows))

	if r.Drift {
		b.WriteString("\n" + warnStyle.Render("declared state and backend disagree; see drift notes above") + "\n")
	} else {
		b.WriteString("\n" + successStyle.Render("declared state matches the backend") + "\n")
	}
	return b.String()
}

// Render renders the aggregate setup report.
func (r *SetupReport) Render() string {
	var b strings.Builder
	for _, res := range r.Results {
		switch res.Outcome {
		case worktree.OutcomeFailed:
			fmt.Fprintf(&b, "%s %s: %s\n", errorStyle.Render("✗"), res.StageID, res.Error)
		case worktree.OutcomeAlreadySetUp:
			fmt.Fprintf(&b, "%s %s: already set up at %s\n", subtleStyle.Render("•"), res.StageID, res.Path)
		case worktree.OutcomeResumed:
			fmt.Fprintf(&b, "%s %s: resumed branch %s at %s\n", successStyle.Render("✓"), res.StageID, res.Branch, res.Path)
		default:
			fmt.Fprintf(&b, "%s %s: created branch %s at %s\n", successStyle.Render("✓"), res.StageID, res.Branch, res.Path)
		}
		if len(res.DependsOn) > 0 && res.Outcome != worktree.OutcomeFailed {
			fmt.Fprintf(&b, "  %s\n",
				warnStyle.Render("depends on: "+strings.Join(res.DependsOn, ", ")+" — merge those stages first"))
		}
	}

	if r.Failed > 0 {
		fmt.Fprintf(&b, "\n%s\n", errorStyle.Render(fmt.Sprintf("%d stage(s) failed, %d succeeded", r.Failed, len(r.Results)-r.Failed)))
	}
	return b.String()
}

// Render renders a status transition, flagging backward moves.
func (r *MarkReport) Render() string {
	tr := r.Transition
	line := fmt.Sprintf("%s stage %s: %s -> %s\n", successStyle.Render("✓"), tr.StageID, tr.From, tr.To)
	if tr.Backward {
		line += warnStyle.Render("warning: backward transition, recorded as an explicit correction") + "\n"
	}
	return line
}

// Render renders a removal confirmation.
func (r *RemoveReport) Render() string {
	suffix := ""
	if r.Forced {
		suffix = " (forced, uncommitted changes discarded)"
	}
	return fmt.Sprintf("%s removed checkout %s%s\n", successStyle.Render("✓"), r.Path, suffix)
}

// Render renders the prune summary.
func (r *PruneReport) Render() string {
	if len(r.Pruned) == 0 {
		return subtleStyle.Render("nothing to prune") + "\n"
	}
	var b strings.Builder
	for _, wt := range r.Pruned {
		fmt.Fprintf(&b, "%s pruned %s (%s)\n", successStyle.Render("✓"), wt.Path, wt.Branch)
	}
	return b.String()
}

// Render renders the scaffold confirmation.
func (r *CreateReport) Render() string {
	return fmt.Sprintf("%s created plan %s at %s\n", successStyle.Render("✓"), r.PlanID, r.Path)
}

// RenderError renders a command failure.
func RenderError(err error) string {
	return errorStyle.Render("error: "+err.Error()) + "\n"
}

// table renders rows as aligned columns with a styled header. Styled cells
// are excluded from width calculation by padding on the raw string first.
func table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(headerStyle.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, cell := range row {
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if diff := width - lipgloss.Width(s); diff > 0 {
		return s + strings.Repeat(" ", diff)
	}
	return s
}
