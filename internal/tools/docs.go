package tools

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// DocsClient implements DocsSaver with the Google Docs API.
type DocsClient struct {
	svc *docs.Service
}

// NewDocsClient creates a client authenticated with an OAuth access token.
func NewDocsClient(ctx context.Context, accessToken string) (*DocsClient, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("docs: %w: missing access token", ErrAuth)
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := docs.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	return &DocsClient{svc: svc}, nil
}

// SaveDocument creates a new document with the given title and body text.
func (d *DocsClient) SaveDocument(ctx context.Context, title, body string) (*DocInfo, error) {
	doc, err := d.svc.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError("docs.documents.create", err)
	}

	if body != "" {
		req := &docs.BatchUpdateDocumentRequest{
			Requests: []*docs.Request{{
				InsertText: &docs.InsertTextRequest{
					Location: &docs.Location{Index: 1},
					Text:     body,
				},
			}},
		}
		if _, err := d.svc.Documents.BatchUpdate(doc.DocumentId, req).Context(ctx).Do(); err != nil {
			return nil, mapGoogleError("docs.documents.batchUpdate", err)
		}
	}

	return &DocInfo{
		ID:    doc.DocumentId,
		Title: doc.Title,
		URL:   fmt.Sprintf("https://docs.google.com/document/d/%s/edit", doc.DocumentId),
	}, nil
}
