package tool

import (
	"context"
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

const labelUnread = "UNREAD"

// MessageIDRequest targets a single message.
type MessageIDRequest struct {
	MessageID string `json:"message_id" jsonschema:"the Gmail message ID"`
}

type messagesSvc interface {
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	ModifyMessage(ctx context.Context, msgID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error)
	TrashMessage(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewMessages creates the read-state and trash tool family.
func NewMessages(svc messagesSvc, sink ProgressSink) *Messages {
	return &Messages{svc: svc, sink: sink}
}

// Messages flips the UNREAD label and moves messages to trash. Every mutation
// fetches the target first so a missing ID is a plain result, not an error.
type Messages struct {
	svc  messagesSvc
	sink ProgressSink
}

func (t *Messages) MarkAsRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MessageIDRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Marking message %s as read", input.MessageID))

	msg, err := t.svc.GetMessage(ctx, input.MessageID)
	if err != nil {
		return textResult(fmt.Sprintf("Message with ID %s not found.", input.MessageID))
	}

	if !slices.Contains(msg.LabelIds, labelUnread) {
		return textResult(fmt.Sprintf("Message %s is already marked as read.", input.MessageID))
	}

	if _, err := t.svc.ModifyMessage(ctx, input.MessageID, nil, []string{labelUnread}); err != nil {
		return errorResult(t.sink, "Error marking message as read", err)
	}

	return textResult(fmt.Sprintf("Message %s marked as read", input.MessageID))
}

func (t *Messages) MarkAsUnread(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MessageIDRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Marking message %s as unread", input.MessageID))

	msg, err := t.svc.GetMessage(ctx, input.MessageID)
	if err != nil {
		return textResult(fmt.Sprintf("Message with ID %s not found.", input.MessageID))
	}

	if slices.Contains(msg.LabelIds, labelUnread) {
		return textResult(fmt.Sprintf("Message %s is already marked as unread.", input.MessageID))
	}

	if _, err := t.svc.ModifyMessage(ctx, input.MessageID, []string{labelUnread}, nil); err != nil {
		return errorResult(t.sink, "Error marking message as unread", err)
	}

	return textResult(fmt.Sprintf("Message %s marked as unread", input.MessageID))
}

// DeleteEmail moves a message to trash.
func (t *Messages) DeleteEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MessageIDRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Moving message %s to trash", input.MessageID))

	if _, err := t.svc.GetMessage(ctx, input.MessageID); err != nil {
		return textResult(fmt.Sprintf("Message with ID %s not found.", input.MessageID))
	}

	if _, err := t.svc.TrashMessage(ctx, input.MessageID); err != nil {
		return errorResult(t.sink, "Error deleting message", err)
	}

	return textResult(fmt.Sprintf("Message %s moved to trash.", input.MessageID))
}
