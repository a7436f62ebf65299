package tool

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

// GetEmailLabelsRequest has no parameters.
type GetEmailLabelsRequest struct{}

// LabelNameRequest names a label to create or delete.
type LabelNameRequest struct {
	Name string `json:"name" jsonschema:"the label name"`
}

// MessageLabelRequest targets one message and one label by name.
type MessageLabelRequest struct {
	MessageID string `json:"message_id" jsonschema:"the Gmail message ID"`
	LabelName string `json:"label_name" jsonschema:"the label name"`
}

type labelsSvc interface {
	ListLabels(ctx context.Context) ([]*gmail.Label, error)
	CreateLabel(ctx context.Context, name string) (*gmail.Label, error)
	DeleteLabel(ctx context.Context, labelID string) error
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	ModifyMessage(ctx context.Context, msgID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error)
}

// NewLabels creates the label management tool family.
func NewLabels(svc labelsSvc, sink ProgressSink) *Labels {
	return &Labels{svc: svc, sink: sink}
}

// Labels manages Gmail labels and their assignment to messages. Label names
// are matched case-insensitively throughout.
type Labels struct {
	svc  labelsSvc
	sink ProgressSink
}

// GetEmailLabels lists system labels followed by user labels.
func (t *Labels) GetEmailLabels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetEmailLabelsRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info("Getting Gmail labels")

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error getting labels", err)
	}

	if len(labels) == 0 {
		return textResult("No labels found in this Gmail account.")
	}

	var system, user []*gmail.Label
	for _, label := range labels {
		if label.Type == "system" {
			system = append(system, label)
		} else {
			user = append(user, label)
		}
	}

	var b strings.Builder
	b.WriteString("Gmail Labels:\n\n")

	if len(system) > 0 {
		b.WriteString("System Labels:\n")
		for _, label := range system {
			fmt.Fprintf(&b, "- %s (ID: %s)\n", label.Name, label.Id)
		}
	}
	if len(user) > 0 {
		b.WriteString("\nUser Labels:\n")
		for _, label := range user {
			fmt.Fprintf(&b, "- %s (ID: %s)\n", label.Name, label.Id)
		}
	}

	return textResult(b.String())
}

// CreateEmailLabel creates a label, reporting an existing one instead of
// duplicating it.
func (t *Labels) CreateEmailLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LabelNameRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Creating new label: %s", input.Name))

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error creating label", err)
	}

	if existing := findLabel(labels, input.Name); existing != nil {
		return textResult(fmt.Sprintf("Label '%s' already exists with ID: %s", input.Name, existing.Id))
	}

	label, err := t.svc.CreateLabel(ctx, input.Name)
	if err != nil {
		return errorResult(t.sink, "Error creating label", err)
	}

	return textResult(fmt.Sprintf("Label '%s' created successfully with ID: %s", input.Name, label.Id))
}

// DeleteEmailLabel deletes a user label by name; system labels are refused.
func (t *Labels) DeleteEmailLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LabelNameRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Deleting label: %s", input.Name))

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error deleting label", err)
	}

	label := findLabel(labels, input.Name)
	if label == nil {
		return textResult(fmt.Sprintf("Label '%s' not found. Please check the label name.", input.Name))
	}
	if label.Type == "system" {
		return textResult(fmt.Sprintf("Cannot delete system label '%s'.", input.Name))
	}

	if err := t.svc.DeleteLabel(ctx, label.Id); err != nil {
		return errorResult(t.sink, "Error deleting label", err)
	}

	return textResult(fmt.Sprintf("Label '%s' deleted successfully.", input.Name))
}

// LabelEmail applies a label to a message, creating the label when missing.
func (t *Labels) LabelEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MessageLabelRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Applying label '%s' to message %s", input.LabelName, input.MessageID))

	if _, err := t.svc.GetMessage(ctx, input.MessageID); err != nil {
		return textResult(fmt.Sprintf("Message with ID %s not found.", input.MessageID))
	}

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error applying label", err)
	}

	label := findLabel(labels, input.LabelName)
	if label == nil {
		t.sink.Info(fmt.Sprintf("Label '%s' not found. Creating new label.", input.LabelName))

		label, err = t.svc.CreateLabel(ctx, input.LabelName)
		if err != nil {
			return errorResult(t.sink, "Error applying label", err)
		}
	}

	if _, err := t.svc.ModifyMessage(ctx, input.MessageID, []string{label.Id}, nil); err != nil {
		return errorResult(t.sink, "Error applying label", err)
	}

	return textResult(fmt.Sprintf("Label '%s' applied to message %s", input.LabelName, input.MessageID))
}

// RemoveEmailLabel removes a label from a message after checking the message
// actually carries it.
func (t *Labels) RemoveEmailLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MessageLabelRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Removing label '%s' from message %s", input.LabelName, input.MessageID))

	msg, err := t.svc.GetMessage(ctx, input.MessageID)
	if err != nil {
		return textResult(fmt.Sprintf("Message with ID %s not found.", input.MessageID))
	}

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error removing label", err)
	}

	label := findLabel(labels, input.LabelName)
	if label == nil {
		return textResult(fmt.Sprintf("Label '%s' not found. Please check the label name.", input.LabelName))
	}

	if !slices.Contains(msg.LabelIds, label.Id) {
		return textResult(fmt.Sprintf("Message %s does not have label '%s'.", input.MessageID, input.LabelName))
	}

	if _, err := t.svc.ModifyMessage(ctx, input.MessageID, nil, []string{label.Id}); err != nil {
		return errorResult(t.sink, "Error removing label", err)
	}

	return textResult(fmt.Sprintf("Label '%s' removed from message %s", input.LabelName, input.MessageID))
}
