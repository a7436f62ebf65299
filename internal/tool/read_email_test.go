package tool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"

	"github.com/meyannis/mcpgmail/internal/mail"
	"github.com/meyannis/mcpgmail/internal/tool"
)

func TestReadEmail(t *testing.T) {
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			return &gmail.Message{
				Id:       msgID,
				LabelIds: []string{"INBOX"},
				Payload: &gmail.MessagePart{
					MimeType: "multipart/mixed",
					Headers: []*gmail.MessagePartHeader{
						{Name: "Subject", Value: "=?UTF-8?B?SMOpbGxv?="},
						{Name: "From", Value: "alice@example.com"},
						{Name: "To", Value: "me@example.com"},
						{Name: "Cc", Value: "bob@example.com"},
						{Name: "Date", Value: "Sat, 15 Mar 2025 09:30:45 +0000"},
					},
					Parts: []*gmail.MessagePart{
						{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64url("the body text")}},
						{MimeType: "application/pdf", Filename: "doc.pdf", Body: &gmail.MessagePartBody{AttachmentId: "a1", Size: 2048}},
					},
				},
			}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "read_email", tool.ReadEmailRequest{
		MessageID:          "msg-001",
		IncludeAttachments: true,
	})

	assert.Contains(t, text, "Subject: Héllo")
	assert.Contains(t, text, "From: alice@example.com")
	assert.Contains(t, text, "Cc: bob@example.com")
	assert.Contains(t, text, "Date: 2025-03-15 09:30")
	assert.Contains(t, text, "Labels: INBOX")
	assert.Contains(t, text, "the body text")
	assert.Contains(t, text, "Attachments (1):")
	assert.Contains(t, text, "1. doc.pdf (application/pdf, 2.0 KB)")
}

func TestReadEmailWithoutAttachmentList(t *testing.T) {
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			return &gmail.Message{
				Id: msgID,
				Payload: &gmail.MessagePart{
					MimeType: "text/html",
					Headers: []*gmail.MessagePartHeader{
						{Name: "From", Value: "alice@example.com"},
					},
					Body: &gmail.MessagePartBody{Data: b64url("<p>Hi</p>")},
				},
			}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "read_email", tool.ReadEmailRequest{MessageID: "msg-002"})
	assert.Contains(t, text, "Subject: No Subject")
	assert.Contains(t, text, "Hi\n")
	assert.NotContains(t, text, "Attachments")
}

func TestReadEmailEmptyBody(t *testing.T) {
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			return &gmail.Message{Id: msgID, Payload: &gmail.MessagePart{MimeType: "multipart/mixed"}}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "read_email", tool.ReadEmailRequest{MessageID: "msg-003"})
	assert.Contains(t, text, mail.BodyPlaceholder)
}

func TestReadEmailNotFound(t *testing.T) {
	svc := &gmailSvcMock{
		GetMessageFunc: func(context.Context, string) (*gmail.Message, error) {
			return nil, &googleapi.Error{Code: 404, Message: "not found"}
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "read_email", tool.ReadEmailRequest{MessageID: "missing"})
	assert.Equal(t, "Message with ID missing not found.", text)
}
