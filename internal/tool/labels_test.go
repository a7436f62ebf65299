package tool_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/tool"
)

func accountLabels() []*gmail.Label {
	return []*gmail.Label{
		{Id: "INBOX", Name: "INBOX", Type: "system"},
		{Id: "UNREAD", Name: "UNREAD", Type: "system"},
		{Id: "Label_1", Name: "Work", Type: "user"},
	}
}

func TestGetEmailLabels(t *testing.T) {
	svc := &gmailSvcMock{
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return accountLabels(), nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "get_email_labels", tool.GetEmailLabelsRequest{})
	assert.Contains(t, text, "System Labels:")
	assert.Contains(t, text, "- INBOX (ID: INBOX)")
	assert.Contains(t, text, "User Labels:")
	assert.Contains(t, text, "- Work (ID: Label_1)")
}

func TestCreateEmailLabel(t *testing.T) {
	svc := &gmailSvcMock{
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return accountLabels(), nil
		},
		CreateLabelFunc: func(_ context.Context, name string) (*gmail.Label, error) {
			return &gmail.Label{Id: "Label_2", Name: name, Type: "user"}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "create_email_label", tool.LabelNameRequest{Name: "Personal"})
	assert.Equal(t, "Label 'Personal' created successfully with ID: Label_2", text)

	// Case-insensitive duplicate detection.
	text = callText(t, session, "create_email_label", tool.LabelNameRequest{Name: "work"})
	assert.Equal(t, "Label 'work' already exists with ID: Label_1", text)
}

func TestDeleteEmailLabel(t *testing.T) {
	var deletedID string
	svc := &gmailSvcMock{
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return accountLabels(), nil
		},
		DeleteLabelFunc: func(_ context.Context, labelID string) error {
			deletedID = labelID
			return nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "delete_email_label", tool.LabelNameRequest{Name: "Work"})
	assert.Equal(t, "Label 'Work' deleted successfully.", text)
	assert.Equal(t, "Label_1", deletedID)

	text = callText(t, session, "delete_email_label", tool.LabelNameRequest{Name: "INBOX"})
	assert.Equal(t, "Cannot delete system label 'INBOX'.", text)

	text = callText(t, session, "delete_email_label", tool.LabelNameRequest{Name: "Nope"})
	assert.Equal(t, "Label 'Nope' not found. Please check the label name.", text)
}

func TestLabelEmailCreatesMissingLabel(t *testing.T) {
	var added []string
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			return &gmail.Message{Id: msgID}, nil
		},
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return accountLabels(), nil
		},
		CreateLabelFunc: func(_ context.Context, name string) (*gmail.Label, error) {
			return &gmail.Label{Id: "Label_9", Name: name, Type: "user"}, nil
		},
		ModifyMessageFunc: func(_ context.Context, _ string, addLabelIDs, _ []string) (*gmail.Message, error) {
			added = addLabelIDs
			return &gmail.Message{}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "label_email", tool.MessageLabelRequest{
		MessageID: "msg-001",
		LabelName: "Projects",
	})
	assert.Equal(t, "Label 'Projects' applied to message msg-001", text)
	assert.Equal(t, []string{"Label_9"}, added)
}

func TestRemoveEmailLabel(t *testing.T) {
	var removed []string
	svc := &gmailSvcMock{
		GetMessageFunc: func(_ context.Context, msgID string) (*gmail.Message, error) {
			return &gmail.Message{Id: msgID, LabelIds: []string{"INBOX", "Label_1"}}, nil
		},
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return accountLabels(), nil
		},
		ModifyMessageFunc: func(_ context.Context, _ string, _, removeLabelIDs []string) (*gmail.Message, error) {
			removed = removeLabelIDs
			return &gmail.Message{}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "remove_email_label", tool.MessageLabelRequest{
		MessageID: "msg-001",
		LabelName: "Work",
	})
	assert.Equal(t, "Label 'Work' removed from message msg-001", text)
	assert.Equal(t, []string{"Label_1"}, removed)

	text = callText(t, session, "remove_email_label", tool.MessageLabelRequest{
		MessageID: "msg-001",
		LabelName: "UNREAD",
	})
	assert.Equal(t, "Message msg-001 does not have label 'UNREAD'.", text)
}
