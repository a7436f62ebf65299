package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/mail"
)

// ReadEmailRequest identifies the message to read.
type ReadEmailRequest struct {
	MessageID          string `json:"message_id" jsonschema:"Gmail message ID to read"`
	IncludeAttachments bool   `json:"include_attachments,omitempty" jsonschema:"whether to list attachment metadata"`
}

type readSvc interface {
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewReadEmail creates the read_email tool.
func NewReadEmail(svc readSvc, sink ProgressSink) *ReadEmail {
	return &ReadEmail{svc: svc, sink: sink}
}

// ReadEmail renders a full message: normalized headers, labels, the resolved
// text body and, on request, the attachment list with human-readable sizes.
type ReadEmail struct {
	svc  readSvc
	sink ProgressSink
}

func (t *ReadEmail) ReadEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReadEmailRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Reading email with ID: %s", input.MessageID))

	msg, err := t.svc.GetMessage(ctx, input.MessageID)
	if err != nil {
		if isNotFound(err) {
			return textResult(fmt.Sprintf("Message with ID %s not found.", input.MessageID))
		}
		return errorResult(t.sink, "Error reading email", err)
	}

	var headers []*gmail.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	subject := mail.DecodeSubject(mail.HeaderValue(headers, "Subject", "No Subject"))
	sender := mail.HeaderValue(headers, "From", "Unknown Sender")
	recipient := mail.HeaderValue(headers, "To", "Unknown Recipient")
	date := mail.FormatDate(mail.HeaderValue(headers, "Date", "Unknown Date"))
	cc := mail.HeaderValue(headers, "Cc", "")

	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", subject)
	fmt.Fprintf(&b, "From: %s\n", sender)
	fmt.Fprintf(&b, "To: %s\n", recipient)
	if cc != "" {
		fmt.Fprintf(&b, "Cc: %s\n", cc)
	}
	fmt.Fprintf(&b, "Date: %s\n", date)

	if len(msg.LabelIds) > 0 {
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(msg.LabelIds, ", "))
	}

	b.WriteString(resultDivider + "\n\n")

	body, attachments := mail.Decompose(msg.Payload, input.IncludeAttachments)
	b.WriteString(body)

	if input.IncludeAttachments && len(attachments) > 0 {
		b.WriteString("\n\n" + resultDivider + "\n")
		fmt.Fprintf(&b, "Attachments (%d):\n", len(attachments))
		for i, att := range attachments {
			fmt.Fprintf(&b, "%d. %s (%s, %s)\n", i+1, att.Filename, att.MimeType, att.Size)
		}
	}

	return textResult(b.String())
}
