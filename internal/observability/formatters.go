package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/prep-coach/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for debug mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintEmailInsight outputs a safe summary of the email analysis. Email
// contents are never dumped, only counts and subjects of derived insights.
func (p *Printer) PrintEmailInsight(insight *types.EmailInsight) {
	if insight == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total emails:        %d\n", insight.TotalEmails)
	fmt.Fprintf(&sb, "Interview-relevant:  %d\n", len(insight.InterviewRelated))
	fmt.Fprintf(&sb, "Contacts found:      %d\n", len(insight.Contacts))

	if len(insight.KeyInsights) > 0 {
		sb.WriteString("\nKey insights:\n")
		count := min(len(insight.KeyInsights), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString("  • " + insight.KeyInsights[i] + "\n")
		}
		if len(insight.KeyInsights) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(insight.KeyInsights)-maxItemsToShow)
		}
	}

	p.printBox("EMAIL ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDiscovery outputs the candidate set and per-bucket selections.
func (p *Printer) PrintDiscovery(result *types.DiscoveryResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Mode:        %s\n", result.Mode)
	fmt.Fprintf(&sb, "Candidates:  %d\n", len(result.Candidates))
	fmt.Fprintf(&sb, "Selected:    %d\n", len(result.Selected))

	if len(result.Selections) > 0 {
		sb.WriteString("\nPer-bucket selection:\n")
		for _, sel := range result.Selections {
			fmt.Fprintf(&sb, "  %-8s (%s)\n", sel.Intent, sel.Method)
			for _, u := range sel.URLs {
				sb.WriteString("    • " + u + "\n")
			}
		}
	}

	p.printBox("URL DISCOVERY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResearchArtifact outputs the aggregated web research summary.
func (p *Printer) PrintResearchArtifact(artifact *types.ResearchArtifact) {
	if artifact == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Company:    %s (%s)\n", artifact.CompanyName, artifact.Domain)
	fmt.Fprintf(&sb, "Attempted:  %d\n", artifact.Attempted)
	fmt.Fprintf(&sb, "Succeeded:  %d\n", artifact.Succeeded)
	fmt.Fprintf(&sb, "Skipped:    %d\n", artifact.Skipped)

	if len(artifact.Pages) > 0 {
		sb.WriteString("\nPages:\n")
		count := min(len(artifact.Pages), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString("  • " + artifact.Pages[i].URL + "\n")
		}
		if len(artifact.Pages) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(artifact.Pages)-maxItemsToShow)
		}
	}

	p.printBox("WEB RESEARCH", strings.TrimSuffix(sb.String(), "\n"))
}
