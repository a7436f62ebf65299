package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/mail"
)

// SendEmailRequest describes an outgoing email.
type SendEmailRequest struct {
	To         string `json:"to" jsonschema:"recipient address or comma-separated list"`
	Subject    string `json:"subject" jsonschema:"email subject line"`
	Body       string `json:"body" jsonschema:"plain text body"`
	CC         string `json:"cc,omitempty" jsonschema:"optional carbon copy recipients"`
	BCC        string `json:"bcc,omitempty" jsonschema:"optional blind carbon copy recipients"`
	HTMLBody   string `json:"html_body,omitempty" jsonschema:"optional HTML version of the body"`
	Importance string `json:"importance,omitempty" jsonschema:"optional importance: high, normal or low"`
}

// SendEmailWithAttachmentsRequest describes an outgoing email with file attachments.
type SendEmailWithAttachmentsRequest struct {
	To              string   `json:"to" jsonschema:"recipient address or comma-separated list"`
	Subject         string   `json:"subject" jsonschema:"email subject line"`
	Body            string   `json:"body" jsonschema:"plain text body"`
	AttachmentPaths []string `json:"attachment_paths" jsonschema:"paths of files to attach"`
	CC              string   `json:"cc,omitempty" jsonschema:"optional carbon copy recipients"`
	BCC             string   `json:"bcc,omitempty" jsonschema:"optional blind carbon copy recipients"`
	HTMLBody        string   `json:"html_body,omitempty" jsonschema:"optional HTML version of the body"`
}

type sendSvc interface {
	GetProfile(ctx context.Context) (*gmail.Profile, error)
	SendRaw(ctx context.Context, raw string) (*gmail.Message, error)
}

// NewSendEmail creates the send_email tool family.
func NewSendEmail(svc sendSvc, sink ProgressSink) *SendEmail {
	return &SendEmail{svc: svc, sink: sink}
}

// SendEmail composes and sends mail through the Gmail transport. The From
// address always comes from the authenticated account's profile.
type SendEmail struct {
	svc  sendSvc
	sink ProgressSink
}

// SendEmail sends a plain or plain+HTML message without attachments.
func (t *SendEmail) SendEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendEmailRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Preparing to send email to %s", input.To))

	profile, err := t.svc.GetProfile(ctx)
	if err != nil {
		return errorResult(t.sink, "Error sending email", err)
	}

	env := mail.Envelope{
		From:       profile.EmailAddress,
		To:         input.To,
		CC:         input.CC,
		BCC:        input.BCC,
		Subject:    input.Subject,
		PlainBody:  input.Body,
		HTMLBody:   input.HTMLBody,
		Importance: input.Importance,
	}

	raw, err := mail.Compose(env, mail.ModeAlternative)
	if err != nil {
		return errorResult(t.sink, "Error sending email", err)
	}

	msg, err := t.svc.SendRaw(ctx, raw)
	if err != nil {
		return errorResult(t.sink, "Error sending email", err)
	}

	t.sink.Info(fmt.Sprintf("Email sent successfully with ID: %s", msg.Id))

	return textResult(fmt.Sprintf(
		"Email sent successfully to %s.\nSubject: %s\nMessage ID: %s",
		input.To, input.Subject, msg.Id,
	))
}

// SendEmailWithAttachments sends a message with one or more file attachments.
// Unreadable paths are reported as a warning; when no path resolves at all,
// nothing is sent.
func (t *SendEmail) SendEmailWithAttachments(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendEmailWithAttachmentsRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Preparing to send email with attachments to %s", input.To))

	attachments, missing := mail.LoadAttachments(input.AttachmentPaths)
	if len(missing) > 0 {
		t.sink.Warn(fmt.Sprintf(
			"The following attachment files were not found: %s",
			strings.Join(missing, ", "),
		))

		if len(attachments) == 0 {
			return textResult("Error: None of the specified attachment files were found. Email not sent.")
		}
	}

	profile, err := t.svc.GetProfile(ctx)
	if err != nil {
		return errorResult(t.sink, "Error sending email with attachments", err)
	}

	env := mail.Envelope{
		From:        profile.EmailAddress,
		To:          input.To,
		CC:          input.CC,
		BCC:         input.BCC,
		Subject:     input.Subject,
		PlainBody:   input.Body,
		HTMLBody:    input.HTMLBody,
		Attachments: attachments,
	}

	raw, err := mail.Compose(env, mail.ModeMixed)
	if err != nil {
		return errorResult(t.sink, "Error sending email with attachments", err)
	}

	msg, err := t.svc.SendRaw(ctx, raw)
	if err != nil {
		return errorResult(t.sink, "Error sending email with attachments", err)
	}

	attached := make([]string, 0, len(attachments))
	for _, att := range attachments {
		attached = append(attached, att.Filename)
	}

	result := fmt.Sprintf(
		"Email with %d attachment(s) sent successfully to %s.\nSubject: %s\nAttached files: %s\nMessage ID: %s",
		len(attachments), input.To, input.Subject, strings.Join(attached, ", "), msg.Id,
	)
	if len(missing) > 0 {
		result += fmt.Sprintf("\nWarning: the following attachment files were not found: %s", strings.Join(missing, ", "))
	}

	return textResult(result)
}
