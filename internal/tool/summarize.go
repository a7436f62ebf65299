package tool

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/mail"
)

// senderName pulls the display name out of a From header, leaving the full
// value when the header is a bare address.
var senderName = regexp.MustCompile(`"?([^"<]+)"?\s*(?:<[^>]+>)?`)

// SummarizeRecentEmailsRequest bounds the summary window.
type SummarizeRecentEmailsRequest struct {
	MaxEmails int64  `json:"max_emails,omitempty" jsonschema:"maximum number of emails to summarize, default 10"`
	Days      int    `json:"days,omitempty" jsonschema:"number of days to look back, default 3"`
	Query     string `json:"query,omitempty" jsonschema:"optional additional search query"`
}

// SummarizeRecentEmails renders one compact block per recent message: subject,
// sender display name, reformatted date and UNREAD/IMPORTANT markers.
func (t *SearchEmails) SummarizeRecentEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummarizeRecentEmailsRequest,
) (*mcp.CallToolResult, any, error) {
	days := input.Days
	if days <= 0 {
		days = 3
	}

	t.sink.Info(fmt.Sprintf("Summarizing recent emails from the last %d days", days))

	after := time.Now().AddDate(0, 0, -days).Format("2006/01/02")
	query := "after:" + after
	if input.Query != "" {
		query += " " + input.Query
	}

	listing, err := t.svc.ListMessages(ctx, query, "", normalizeMaxResults(input.MaxEmails, 10, 50))
	if err != nil {
		return errorResult(t.sink, "Error summarizing emails", err)
	}

	if len(listing.Messages) == 0 {
		if input.Query != "" {
			return textResult(fmt.Sprintf("No emails found in the last %d days matching query: '%s'", days, input.Query))
		}
		return textResult(fmt.Sprintf("No emails found in the last %d days.", days))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Summary of %d recent emails", len(listing.Messages))
	if input.Query != "" {
		fmt.Fprintf(&b, " matching '%s'", input.Query)
	}
	fmt.Fprintf(&b, " from the last %d days:\n\n", days)

	for i, m := range listing.Messages {
		t.sink.Progress(i, len(listing.Messages))

		msg, err := t.svc.GetMessage(ctx, m.Id)
		if err != nil {
			return errorResult(t.sink, "Error summarizing emails", err)
		}

		var headers []*gmail.MessagePartHeader
		if msg.Payload != nil {
			headers = msg.Payload.Headers
		}
		subject := mail.HeaderValue(headers, "Subject", "No Subject")
		sender := mail.HeaderValue(headers, "From", "Unknown Sender")
		date := mail.FormatDate(mail.HeaderValue(headers, "Date", "Unknown Date"))

		if match := senderName.FindStringSubmatch(sender); match != nil {
			sender = strings.TrimSpace(match[1])
		}

		fmt.Fprintf(&b, "%d. %s\n", i+1, subject)
		fmt.Fprintf(&b, "   From: %s | %s", sender, date)
		if slices.Contains(msg.LabelIds, labelUnread) {
			b.WriteString(" | UNREAD")
		}
		if slices.Contains(msg.LabelIds, "IMPORTANT") {
			b.WriteString(" | IMPORTANT")
		}
		fmt.Fprintf(&b, "\n   ID: %s\n\n", msg.Id)
	}

	return textResult(b.String())
}
