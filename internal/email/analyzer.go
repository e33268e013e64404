// Package email analyzes the user's correspondence with the target company to
// extract interview-relevant signal.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/prep-coach/internal/tools"
	"github.com/jonathan/prep-coach/internal/types"
)

const (
	// DefaultLookbackDays bounds how far back the thread search reaches.
	DefaultLookbackDays = 90
	// DefaultMaxThreads bounds how many threads one search may return.
	DefaultMaxThreads = 20
	// maxContacts caps the extracted contact list.
	maxContacts = 10
)

// interviewKeywords mark a thread as interview-relevant when any of them
// appears in its subject or content.
var interviewKeywords = []string{
	"interview", "hiring", "position", "role", "candidate",
	"assessment", "onsite", "technical", "culture", "team",
	"offer", "application", "resume", "cv", "background",
	"schedule", "meeting", "call", "discussion", "chat",
	"recruiter", "recruitment", "opportunity",
}

// Analyzer extracts interview signal from company emails via the mail provider.
type Analyzer struct {
	mail         tools.MailProvider
	exec         *tools.Executor
	lookbackDays int
	maxThreads   int
}

// NewAnalyzer creates an analyzer with the default search bounds.
func NewAnalyzer(mail tools.MailProvider, exec *tools.Executor) *Analyzer {
	return &Analyzer{
		mail:         mail,
		exec:         exec,
		lookbackDays: DefaultLookbackDays,
		maxThreads:   DefaultMaxThreads,
	}
}

// AnalyzeCompanyEmails finds emails from the company domain and distills
// insights and contacts. Search failures other than auth degrade to an empty
// insight; an auth failure is returned as a fatal error.
func (a *Analyzer) AnalyzeCompanyEmails(ctx context.Context, domain, userID string) (types.EmailInsight, error) {
	res := a.exec.InvokeWithRetry(ctx, "email:search", "mail.search_threads", func(ctx context.Context) (any, error) {
		return a.mail.SearchThreads(ctx, domain, userID, a.lookbackDays, a.maxThreads)
	})
	if res.Fatal() {
		return types.EmailInsight{}, res.Err
	}
	if !res.OK {
		return types.EmailInsight{}, nil
	}

	threads, _ := res.Data.([]tools.MailThread)
	emails := a.toCompanyEmails(threads, domain)
	interview := filterInterviewEmails(emails)

	return types.EmailInsight{
		TotalEmails:      len(emails),
		InterviewRelated: interview,
		KeyInsights:      extractKeyInsights(interview),
		Contacts:         extractContacts(emails),
	}, nil
}

// toCompanyEmails converts provider threads, keeping only senders at the
// company domain. The provider already filtered by sender, but the match is
// verified rather than trusted.
func (a *Analyzer) toCompanyEmails(threads []tools.MailThread, domain string) []types.CompanyEmail {
	emails := make([]types.CompanyEmail, 0, len(threads))
	suffix := "@" + strings.ToLower(domain)
	for _, t := range threads {
		if !strings.Contains(strings.ToLower(t.Sender), suffix) {
			continue
		}
		emails = append(emails, types.CompanyEmail{
			ID:      t.ID,
			Subject: t.Subject,
			Sender:  t.Sender,
			Date:    t.Date,
			Content: t.Snippet,
		})
	}
	return emails
}

// filterInterviewEmails keeps emails whose subject or content matches any
// interview keyword.
func filterInterviewEmails(emails []types.CompanyEmail) []types.CompanyEmail {
	relevant := make([]types.CompanyEmail, 0, len(emails))
	for _, e := range emails {
		haystack := strings.ToLower(e.Subject + " " + e.Content)
		for _, kw := range interviewKeywords {
			if strings.Contains(haystack, kw) {
				relevant = append(relevant, e)
				break
			}
		}
	}
	return relevant
}

// extractKeyInsights derives per-email observations, deduplicated in
// first-seen order.
func extractKeyInsights(emails []types.CompanyEmail) []string {
	seen := make(map[string]bool)
	var insights []string

	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			insights = append(insights, s)
		}
	}

	for _, e := range emails {
		content := strings.ToLower(e.Content)
		if strings.Contains(content, "engineer") {
			add(fmt.Sprintf("Engineering role discussed in: %s", e.Subject))
		}
		if strings.Contains(content, "process") || strings.Contains(content, "steps") {
			add(fmt.Sprintf("Interview process details in: %s", e.Subject))
		}
		if strings.Contains(content, "team") || strings.Contains(content, "culture") {
			add(fmt.Sprintf("Team/culture information in: %s", e.Subject))
		}
		if strings.Contains(content, "experience") || strings.Contains(content, "skills") {
			add(fmt.Sprintf("Requirements/skills mentioned in: %s", e.Subject))
		}
	}
	return insights
}

// extractContacts collects unique senders, newest-first per search order.
func extractContacts(emails []types.CompanyEmail) []types.Contact {
	seen := make(map[string]bool)
	var contacts []types.Contact

	for _, e := range emails {
		addr := e.Sender
		if addr == "" || !strings.Contains(addr, "@") || seen[addr] {
			continue
		}
		seen[addr] = true

		subject := e.Subject
		if len(subject) > 100 {
			subject = subject[:100] + "..."
		}
		contacts = append(contacts, types.Contact{
			Email:       addr,
			Name:        nameFromAddress(addr),
			LastContact: e.Date,
			Subject:     subject,
		})
		if len(contacts) >= maxContacts {
			break
		}
	}
	return contacts
}

// nameFromAddress guesses a display name from the address local part.
func nameFromAddress(addr string) string {
	local := addr
	if idx := strings.Index(addr, "@"); idx >= 0 {
		local = addr[:idx]
	}
	local = strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)

	words := strings.Fields(local)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
