package tool_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/tool"
)

func TestMarkAsRead(t *testing.T) {
	var removed []string
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			if msgID == "missing" {
				return nil, fmt.Errorf("not found")
			}
			labels := []string{"INBOX"}
			if msgID == "unread-msg" {
				labels = append(labels, "UNREAD")
			}
			return &gmail.Message{Id: msgID, LabelIds: labels}, nil
		},
		ModifyMessageFunc: func(_ context.Context, _ string, _, removeLabelIDs []string) (*gmail.Message, error) {
			removed = removeLabelIDs
			return &gmail.Message{}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "mark_as_read", tool.MessageIDRequest{MessageID: "unread-msg"})
	assert.Equal(t, "Message unread-msg marked as read", text)
	assert.Equal(t, []string{"UNREAD"}, removed)

	text = callText(t, session, "mark_as_read", tool.MessageIDRequest{MessageID: "read-msg"})
	assert.Equal(t, "Message read-msg is already marked as read.", text)

	text = callText(t, session, "mark_as_read", tool.MessageIDRequest{MessageID: "missing"})
	assert.Equal(t, "Message with ID missing not found.", text)
}

func TestMarkAsUnread(t *testing.T) {
	var added []string
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			labels := []string{"INBOX"}
			if msgID == "unread-msg" {
				labels = append(labels, "UNREAD")
			}
			return &gmail.Message{Id: msgID, LabelIds: labels}, nil
		},
		ModifyMessageFunc: func(_ context.Context, _ string, addLabelIDs, _ []string) (*gmail.Message, error) {
			added = addLabelIDs
			return &gmail.Message{}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "mark_as_unread", tool.MessageIDRequest{MessageID: "read-msg"})
	assert.Equal(t, "Message read-msg marked as unread", text)
	assert.Equal(t, []string{"UNREAD"}, added)

	text = callText(t, session, "mark_as_unread", tool.MessageIDRequest{MessageID: "unread-msg"})
	assert.Equal(t, "Message unread-msg is already marked as unread.", text)
}

func TestDeleteEmail(t *testing.T) {
	var trashed string
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			if msgID == "missing" {
				return nil, fmt.Errorf("not found")
			}
			return &gmail.Message{Id: msgID}, nil
		},
		TrashMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			trashed = msgID
			return &gmail.Message{Id: msgID}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "delete_email", tool.MessageIDRequest{MessageID: "msg-001"})
	assert.Equal(t, "Message msg-001 moved to trash.", text)
	assert.Equal(t, "msg-001", trashed)

	text = callText(t, session, "delete_email", tool.MessageIDRequest{MessageID: "missing"})
	assert.Equal(t, "Message with ID missing not found.", text)
}
