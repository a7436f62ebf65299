package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/mail"
)

// CreateEmailDraftRequest describes a new draft.
type CreateEmailDraftRequest struct {
	To       string `json:"to" jsonschema:"recipient address or comma-separated list"`
	Subject  string `json:"subject" jsonschema:"email subject line"`
	Body     string `json:"body" jsonschema:"plain text body"`
	CC       string `json:"cc,omitempty" jsonschema:"optional carbon copy recipients"`
	BCC      string `json:"bcc,omitempty" jsonschema:"optional blind carbon copy recipients"`
	HTMLBody string `json:"html_body,omitempty" jsonschema:"optional HTML version of the body"`
}

// UpdateEmailDraftRequest is a partial draft update. Omitted fields preserve
// the draft's current value; an explicit empty string clears the field.
type UpdateEmailDraftRequest struct {
	DraftID  string  `json:"draft_id" jsonschema:"ID of the draft to update"`
	To       *string `json:"to,omitempty" jsonschema:"new recipients; omit to preserve, empty to clear"`
	Subject  *string `json:"subject,omitempty" jsonschema:"new subject; omit to preserve, empty to clear"`
	Body     *string `json:"body,omitempty" jsonschema:"new plain text body; omit to preserve"`
	CC       *string `json:"cc,omitempty" jsonschema:"new carbon copy recipients; omit to preserve, empty to clear"`
	BCC      *string `json:"bcc,omitempty" jsonschema:"new blind carbon copy recipients; omit to preserve, empty to clear"`
	HTMLBody *string `json:"html_body,omitempty" jsonschema:"new HTML body; omit to preserve"`
}

// SendDraftRequest identifies the draft to send.
type SendDraftRequest struct {
	DraftID string `json:"draft_id" jsonschema:"ID of the draft to send"`
}

// ListEmailDraftsRequest bounds the draft listing.
type ListEmailDraftsRequest struct {
	MaxResults int64 `json:"max_results,omitempty" jsonschema:"maximum number of drafts to list, default 10"`
}

type draftsSvc interface {
	GetProfile(ctx context.Context) (*gmail.Profile, error)
	CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error)
	UpdateDraft(ctx context.Context, draftID, raw string) (*gmail.Draft, error)
	GetDraft(ctx context.Context, draftID string) (*gmail.Draft, error)
	ListDrafts(ctx context.Context, maxResults int64) (*gmail.ListDraftsResponse, error)
	SendDraft(ctx context.Context, draftID string) (*gmail.Message, error)
	GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewDrafts creates the draft management tool family.
func NewDrafts(svc draftsSvc, sink ProgressSink) *Drafts {
	return &Drafts{svc: svc, sink: sink}
}

// Drafts creates, updates, lists and sends Gmail drafts.
type Drafts struct {
	svc  draftsSvc
	sink ProgressSink
}

// CreateEmailDraft composes a new draft from scratch.
func (t *Drafts) CreateEmailDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateEmailDraftRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Creating email draft to %s", input.To))

	profile, err := t.svc.GetProfile(ctx)
	if err != nil {
		return errorResult(t.sink, "Error creating draft", err)
	}

	env := mail.Envelope{
		From:      profile.EmailAddress,
		To:        input.To,
		CC:        input.CC,
		BCC:       input.BCC,
		Subject:   input.Subject,
		PlainBody: input.Body,
		HTMLBody:  input.HTMLBody,
	}

	raw, err := mail.Compose(env, mail.ModeAlternative)
	if err != nil {
		return errorResult(t.sink, "Error creating draft", err)
	}

	draft, err := t.svc.CreateDraft(ctx, raw)
	if err != nil {
		return errorResult(t.sink, "Error creating draft", err)
	}

	return textResult(fmt.Sprintf(
		"Draft created successfully.\nTo: %s\nSubject: %s\nDraft ID: %s",
		input.To, input.Subject, draft.Id,
	))
}

// UpdateEmailDraft merges the supplied fields into the existing draft and
// recomposes it. The draft is re-stamped with the current account's From
// address.
func (t *Drafts) UpdateEmailDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateEmailDraftRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Attempting to update draft with ID: %s", input.DraftID))

	draft, err := t.svc.GetDraft(ctx, input.DraftID)
	if err != nil {
		if isNotFound(err) {
			return textResult(fmt.Sprintf("Error: Draft with ID '%s' not found.", input.DraftID))
		}
		return errorResult(t.sink, "Error updating draft", err)
	}

	profile, err := t.svc.GetProfile(ctx)
	if err != nil {
		return errorResult(t.sink, "Error updating draft", err)
	}

	env, err := mail.Merge(draft.Message, mail.DraftUpdate{
		To:       input.To,
		Subject:  input.Subject,
		Body:     input.Body,
		CC:       input.CC,
		BCC:      input.BCC,
		HTMLBody: input.HTMLBody,
	}, profile.EmailAddress)
	if err != nil {
		if errors.Is(err, mail.ErrNoBody) {
			return textResult("Error: Cannot update draft with empty body. Provide plain or HTML body.")
		}
		return errorResult(t.sink, "Error updating draft", err)
	}

	raw, err := mail.ComposeUpdate(env)
	if err != nil {
		return errorResult(t.sink, "Error updating draft", err)
	}

	updated, err := t.svc.UpdateDraft(ctx, input.DraftID, raw)
	if err != nil {
		return errorResult(t.sink, "Error updating draft", err)
	}

	return textResult(fmt.Sprintf("Draft '%s' (ID: %s) updated successfully.", env.Subject, updated.Id))
}

// SendDraft sends an existing draft; the draft is fetched first so a missing
// ID becomes a plain result instead of a transport error.
func (t *Drafts) SendDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendDraftRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Sending draft %s", input.DraftID))

	if _, err := t.svc.GetDraft(ctx, input.DraftID); err != nil {
		if isNotFound(err) {
			return textResult(fmt.Sprintf("Draft with ID %s not found", input.DraftID))
		}
		return errorResult(t.sink, "Error sending draft", err)
	}

	msg, err := t.svc.SendDraft(ctx, input.DraftID)
	if err != nil {
		return errorResult(t.sink, "Error sending draft", err)
	}

	return textResult(fmt.Sprintf("Draft sent successfully. Message ID: %s", msg.Id))
}

// ListEmailDrafts renders the draft list with subject, recipient and date.
func (t *Drafts) ListEmailDrafts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListEmailDraftsRequest,
) (*mcp.CallToolResult, any, error) {
	maxResults := normalizeMaxResults(input.MaxResults, 10, 100)
	t.sink.Info(fmt.Sprintf("Listing up to %d email drafts", maxResults))

	result, err := t.svc.ListDrafts(ctx, maxResults)
	if err != nil {
		return errorResult(t.sink, "Error listing drafts", err)
	}

	if len(result.Drafts) == 0 {
		return textResult("No email drafts found.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d email drafts:\n\n", len(result.Drafts))

	for i, draft := range result.Drafts {
		subject, recipient, date := "No Subject", "No Recipient", "Unknown Date"

		if draft.Message != nil {
			msg, err := t.svc.GetMessageMetadata(ctx, draft.Message.Id)
			if err != nil {
				t.sink.Warn(fmt.Sprintf("Error reading draft message %s: %v", draft.Message.Id, err))
			} else if msg.Payload != nil {
				subject = mail.HeaderValue(msg.Payload.Headers, "Subject", subject)
				recipient = mail.HeaderValue(msg.Payload.Headers, "To", recipient)
				date = mail.HeaderValue(msg.Payload.Headers, "Date", date)
			}
		}

		fmt.Fprintf(&b, "%d. Draft ID: %s\n", i+1, draft.Id)
		fmt.Fprintf(&b, "   Subject: %s\n", subject)
		fmt.Fprintf(&b, "   To: %s\n", recipient)
		fmt.Fprintf(&b, "   Created: %s\n", date)
		b.WriteString("   " + resultDivider + "\n")
	}

	return textResult(b.String())
}
