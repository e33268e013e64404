package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/prep-coach/internal/llm"
	"github.com/jonathan/prep-coach/internal/types"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func (f *fakeLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func sampleInsight() types.EmailInsight {
	return types.EmailInsight{
		TotalEmails: 3,
		InterviewRelated: []types.CompanyEmail{
			{Subject: "Interview schedule", Content: "three rounds"},
		},
		KeyInsights: []string{"Interview process details in: Interview schedule"},
		Contacts: []types.Contact{
			{Name: "Jordan Reyes", Email: "jordan@stripe.com", Subject: "Interview schedule"},
		},
	}
}

func sampleArtifact() types.ResearchArtifact {
	return types.ResearchArtifact{
		Domain:      "stripe.com",
		CompanyName: "Stripe",
		Pages: []types.ScrapedPage{
			{URL: "https://stripe.com/about", Content: "payment infrastructure", Outcome: types.FetchOK},
		},
		Attempted: 2,
		Succeeded: 1,
		Skipped:   1,
		Mode:      "full",
	}
}

func TestCreateReport_UsesLLMOutput(t *testing.T) {
	client := &fakeLLM{response: "# Interview Prep: Stripe\n\nCustom report."}
	coach := NewCoach(client)

	got := coach.CreateReport(context.Background(), "stripe.com", sampleInsight(), sampleArtifact())
	assert.Equal(t, client.response, got)

	// Both signal sources end up in the prompt.
	assert.Contains(t, client.prompt, "stripe.com")
	assert.Contains(t, client.prompt, "Interview process details")
	assert.Contains(t, client.prompt, "payment infrastructure")
}

func TestCreateReport_LLMFailureFallsBack(t *testing.T) {
	coach := NewCoach(&fakeLLM{err: errors.New("model unavailable")})

	got := coach.CreateReport(context.Background(), "stripe.com", sampleInsight(), sampleArtifact())
	assert.Equal(t, FallbackReport("stripe.com", sampleInsight(), sampleArtifact()), got)
}

func TestCreateReport_BlankLLMOutputFallsBack(t *testing.T) {
	coach := NewCoach(&fakeLLM{response: "   \n"})

	got := coach.CreateReport(context.Background(), "stripe.com", sampleInsight(), sampleArtifact())
	assert.Contains(t, got, "# Interview Prep: stripe.com")
}

func TestCreateReport_NilClientFallsBack(t *testing.T) {
	coach := NewCoach(nil)

	got := coach.CreateReport(context.Background(), "stripe.com", sampleInsight(), sampleArtifact())
	assert.Contains(t, got, "# Interview Prep: stripe.com")
	assert.Contains(t, got, "## Preparation Checklist")
}

func TestFallbackReport_NotesMissingSignal(t *testing.T) {
	got := FallbackReport("stripe.com", types.EmailInsight{}, types.ResearchArtifact{})

	assert.Contains(t, got, "No emails from this company were found.")
	assert.Contains(t, got, "No web research available.")
	assert.Contains(t, got, "## Preparation Checklist")
}

func TestFallbackReport_ListsPagesAndInsights(t *testing.T) {
	got := FallbackReport("stripe.com", sampleInsight(), sampleArtifact())

	assert.Contains(t, got, "Found 3 emails, 1 interview-relevant.")
	assert.Contains(t, got, "- Interview process details in: Interview schedule")
	assert.Contains(t, got, "- https://stripe.com/about")
}

func TestSummarizeResearch_TruncatesLongPages(t *testing.T) {
	artifact := sampleArtifact()
	long := make([]byte, maxPageChars+500)
	for i := range long {
		long[i] = 'a'
	}
	artifact.Pages[0].Content = string(long)

	summary := summarizeResearch(artifact)
	require.Contains(t, summary, "...")
	assert.Less(t, len(summary), maxPageChars+300)
}

func TestSummarizeEmails_Empty(t *testing.T) {
	assert.Equal(t, "No emails from this company were found in the mailbox.", summarizeEmails(types.EmailInsight{}))
}
