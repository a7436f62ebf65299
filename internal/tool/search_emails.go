package tool

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/mail"
)

// SearchEmailsRequest is a Gmail-syntax query with a result bound.
type SearchEmailsRequest struct {
	Query      string `json:"query" jsonschema:"Gmail search query, e.g. from:user@example.com or is:unread"`
	MaxResults int64  `json:"max_results,omitempty" jsonschema:"maximum number of results, default 10"`
}

// QuickQueryRequest bounds the result count of the canned query tools.
type QuickQueryRequest struct {
	MaxResults int64 `json:"max_results,omitempty" jsonschema:"maximum number of results, default 5"`
}

// AttachmentQueryRequest optionally narrows the has-attachment search.
type AttachmentQueryRequest struct {
	MaxResults int64  `json:"max_results,omitempty" jsonschema:"maximum number of results, default 5"`
	Query      string `json:"query,omitempty" jsonschema:"optional additional search query"`
}

// RecentEmailsRequest bounds the lookback window.
type RecentEmailsRequest struct {
	MaxResults int64 `json:"max_results,omitempty" jsonschema:"maximum number of results, default 5"`
	Days       int   `json:"days,omitempty" jsonschema:"number of days to look back, default 7"`
}

type searchSvc interface {
	ListMessages(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewSearchEmails creates the search tool family.
func NewSearchEmails(svc searchSvc, sink ProgressSink) *SearchEmails {
	return &SearchEmails{svc: svc, sink: sink}
}

// SearchEmails runs Gmail queries and renders one formatted line block per
// match: subject, sender, reformatted date, labels and an attachment flag.
type SearchEmails struct {
	svc  searchSvc
	sink ProgressSink
}

func (t *SearchEmails) SearchEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchEmailsRequest,
) (*mcp.CallToolResult, any, error) {
	return t.search(ctx, input.Query, normalizeMaxResults(input.MaxResults, 10, 50))
}

// GetUnreadEmails lists unread messages.
func (t *SearchEmails) GetUnreadEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuickQueryRequest,
) (*mcp.CallToolResult, any, error) {
	return t.search(ctx, "is:unread", normalizeMaxResults(input.MaxResults, 5, 50))
}

// GetImportantEmails lists messages Gmail marked important.
func (t *SearchEmails) GetImportantEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuickQueryRequest,
) (*mcp.CallToolResult, any, error) {
	return t.search(ctx, "is:important", normalizeMaxResults(input.MaxResults, 5, 50))
}

// GetEmailsWithAttachments lists messages carrying attachments, optionally
// narrowed by an extra query.
func (t *SearchEmails) GetEmailsWithAttachments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AttachmentQueryRequest,
) (*mcp.CallToolResult, any, error) {
	query := "has:attachment"
	if input.Query != "" {
		query += " " + input.Query
	}

	return t.search(ctx, query, normalizeMaxResults(input.MaxResults, 5, 50))
}

// GetRecentEmails lists messages from the last N days.
func (t *SearchEmails) GetRecentEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecentEmailsRequest,
) (*mcp.CallToolResult, any, error) {
	days := input.Days
	if days <= 0 {
		days = 7
	}
	after := time.Now().AddDate(0, 0, -days).Format("2006/01/02")

	return t.search(ctx, "after:"+after, normalizeMaxResults(input.MaxResults, 5, 50))
}

func (t *SearchEmails) search(ctx context.Context, query string, maxResults int64) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Searching emails with query: '%s'", query))

	listing, err := t.svc.ListMessages(ctx, query, "", maxResults)
	if err != nil {
		return errorResult(t.sink, "Error searching emails", err)
	}

	if len(listing.Messages) == 0 {
		return textResult(fmt.Sprintf("No emails found matching query: '%s'.", query))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d emails matching your query:\n\n", len(listing.Messages))

	for i, m := range listing.Messages {
		t.sink.Progress(i, len(listing.Messages))

		msg, err := t.svc.GetMessage(ctx, m.Id)
		if err != nil {
			return errorResult(t.sink, "Error searching emails", err)
		}

		var headers []*gmail.MessagePartHeader
		if msg.Payload != nil {
			headers = msg.Payload.Headers
		}
		subject := mail.HeaderValue(headers, "Subject", "No Subject")
		sender := mail.HeaderValue(headers, "From", "Unknown Sender")
		date := mail.FormatDate(mail.HeaderValue(headers, "Date", "Unknown Date"))

		labelStr := "None"
		if len(msg.LabelIds) > 0 {
			labelStr = strings.Join(msg.LabelIds, ", ")
		}

		hasAttachment := "No"
		if hasAttachmentParts(msg.Payload) {
			hasAttachment = "Yes"
		}

		fmt.Fprintf(&b, "%d. Message ID: %s\n", i+1, msg.Id)
		fmt.Fprintf(&b, "   Subject: %s\n", subject)
		fmt.Fprintf(&b, "   From: %s\n", sender)
		fmt.Fprintf(&b, "   Date: %s\n", date)
		fmt.Fprintf(&b, "   Labels: %s\n", labelStr)
		fmt.Fprintf(&b, "   Has Attachments: %s\n", hasAttachment)
		b.WriteString("   " + resultDivider + "\n")
	}

	return textResult(b.String())
}
