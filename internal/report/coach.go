// Package report synthesizes the interview preparation report and saves it.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/prep-coach/internal/llm"
	"github.com/jonathan/prep-coach/internal/prompts"
	"github.com/jonathan/prep-coach/internal/types"
)

// maxPageChars bounds how much of one scraped page is quoted into the prompt.
const maxPageChars = 2000

// Coach generates the prep report from email and web signal.
type Coach struct {
	client llm.Client
}

// NewCoach creates a coach backed by the given LLM client.
func NewCoach(client llm.Client) *Coach {
	return &Coach{client: client}
}

// CreateReport produces the Markdown report. On any LLM failure it falls back
// to the deterministic basic report; report generation never fails the run.
func (c *Coach) CreateReport(ctx context.Context, company string, insight types.EmailInsight, artifact types.ResearchArtifact) string {
	if c.client != nil {
		template := prompts.MustGet("report.json", "prep-report")
		prompt := prompts.Format(template, map[string]string{
			"Company":      company,
			"EmailSummary": summarizeEmails(insight),
			"WebSummary":   summarizeResearch(artifact),
		})

		text, err := c.client.GenerateContent(ctx, prompt, llm.TierAdvanced)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
	}

	return FallbackReport(company, insight, artifact)
}

// summarizeEmails renders the email insight as prompt context.
func summarizeEmails(insight types.EmailInsight) string {
	if insight.Empty() {
		return "No emails from this company were found in the mailbox."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d emails found, %d interview-relevant.\n", insight.TotalEmails, len(insight.InterviewRelated))

	if len(insight.KeyInsights) > 0 {
		sb.WriteString("Key observations:\n")
		for _, ins := range insight.KeyInsights {
			sb.WriteString("- " + ins + "\n")
		}
	}
	if len(insight.Contacts) > 0 {
		sb.WriteString("Contacts:\n")
		for _, ct := range insight.Contacts {
			fmt.Fprintf(&sb, "- %s (%s), last subject: %s\n", ct.Name, ct.Email, ct.Subject)
		}
	}
	return sb.String()
}

// summarizeResearch renders the research artifact as prompt context.
func summarizeResearch(artifact types.ResearchArtifact) string {
	if artifact.Empty() {
		return "No web research available."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Scraped %d of %d attempted pages from %s.\n", artifact.Succeeded, artifact.Attempted, artifact.Domain)
	for _, p := range artifact.Pages {
		content := p.Content
		if len(content) > maxPageChars {
			content = content[:maxPageChars] + "..."
		}
		fmt.Fprintf(&sb, "\n--- %s ---\n%s\n", p.URL, content)
	}
	return sb.String()
}

// FallbackReport builds a basic deterministic report when the LLM is
// unavailable. Missing signal is noted rather than failing the run.
func FallbackReport(company string, insight types.EmailInsight, artifact types.ResearchArtifact) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Interview Prep: %s\n\n", company)

	sb.WriteString("## Email Signal\n\n")
	if insight.Empty() {
		sb.WriteString("No emails from this company were found.\n\n")
	} else {
		fmt.Fprintf(&sb, "Found %d emails, %d interview-relevant.\n\n", insight.TotalEmails, len(insight.InterviewRelated))
		for _, ins := range insight.KeyInsights {
			sb.WriteString("- " + ins + "\n")
		}
		if len(insight.KeyInsights) > 0 {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("## Web Research\n\n")
	if artifact.Empty() {
		sb.WriteString("No web research available.\n\n")
	} else {
		fmt.Fprintf(&sb, "Gathered %d pages from %s:\n\n", artifact.Succeeded, artifact.Domain)
		for _, p := range artifact.Pages {
			sb.WriteString("- " + p.URL + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Preparation Checklist\n\n")
	sb.WriteString("- Review the company's about and careers pages.\n")
	sb.WriteString("- Re-read recent correspondence and note names and next steps.\n")
	sb.WriteString("- Prepare questions about team structure and interview process.\n")

	return sb.String()
}
