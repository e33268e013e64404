package tools

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailProvider implements MailProvider with the Gmail API. The provider
// operates on the authorized user's mailbox; userID is recorded for telemetry
// but the API acts on the token owner ("me").
type GmailProvider struct {
	svc *gmail.Service
}

// NewGmailProvider creates a provider authenticated with an OAuth access token.
func NewGmailProvider(ctx context.Context, accessToken string) (*GmailProvider, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("gmail: %w: missing access token", ErrAuth)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return &GmailProvider{svc: svc}, nil
}

// SearchThreads finds threads from senders at the company domain within the
// lookback window and returns their summaries, newest first.
func (g *GmailProvider) SearchThreads(ctx context.Context, domain, _ string, lookbackDays, maxResults int) ([]MailThread, error) {
	query := fmt.Sprintf("from:@%s newer_than:%dd", domain, lookbackDays)

	listCall := g.svc.Users.Threads.List("me").Q(query).Context(ctx)
	if maxResults > 0 {
		listCall = listCall.MaxResults(int64(maxResults))
	}

	listResp, err := listCall.Do()
	if err != nil {
		return nil, mapGoogleError("gmail.threads.list", err)
	}

	threads := make([]MailThread, 0, len(listResp.Threads))
	for _, t := range listResp.Threads {
		detail, err := g.svc.Users.Threads.Get("me", t.Id).Format("metadata").
			MetadataHeaders("From", "Subject", "Date").Context(ctx).Do()
		if err != nil {
			// One unreadable thread never aborts the search, but auth
			// failures would repeat for every thread.
			if Classify(mapGoogleError("gmail.threads.get", err)) == KindAuth {
				return nil, mapGoogleError("gmail.threads.get", err)
			}
			continue
		}

		summary := MailThread{ID: t.Id, Snippet: t.Snippet}
		if len(detail.Messages) > 0 {
			first := detail.Messages[0]
			if summary.Snippet == "" {
				summary.Snippet = first.Snippet
			}
			if first.Payload != nil {
				for _, h := range first.Payload.Headers {
					switch strings.ToLower(h.Name) {
					case "from":
						summary.Sender = parseAddress(h.Value)
					case "subject":
						summary.Subject = h.Value
					case "date":
						summary.Date = h.Value
					}
				}
			}
		}
		threads = append(threads, summary)
	}

	return threads, nil
}

// parseAddress extracts the bare address from a "Name <addr>" header value.
func parseAddress(raw string) string {
	if start := strings.LastIndex(raw, "<"); start >= 0 {
		if end := strings.LastIndex(raw, ">"); end > start {
			return strings.TrimSpace(raw[start+1 : end])
		}
	}
	return strings.TrimSpace(raw)
}
