package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/batch"
)

// BatchApplyLabelRequest labels every message matching a query.
type BatchApplyLabelRequest struct {
	Query       string `json:"query" jsonschema:"Gmail search query selecting the messages"`
	LabelName   string `json:"label_name" jsonschema:"the label name to apply"`
	MaxMessages int64  `json:"max_messages,omitempty" jsonschema:"maximum number of messages to process, default 50"`
}

// BatchDeleteEmailsRequest trashes every message matching a query.
type BatchDeleteEmailsRequest struct {
	Query       string `json:"query" jsonschema:"Gmail search query selecting the messages"`
	MaxMessages int64  `json:"max_messages,omitempty" jsonschema:"maximum number of messages to process, default 50"`
}

type batchSvc interface {
	ListMessages(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	ListLabels(ctx context.Context) ([]*gmail.Label, error)
	CreateLabel(ctx context.Context, name string) (*gmail.Label, error)
	ModifyMessage(ctx context.Context, msgID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error)
	TrashMessage(ctx context.Context, msgID string) (*gmail.Message, error)
}

// NewBatchOps creates the bulk tool family. The pacer spaces out the
// per-message calls; tests inject batch.None.
func NewBatchOps(svc batchSvc, pacer batch.Pacer, sink ProgressSink) *BatchOps {
	return &BatchOps{svc: svc, pacer: pacer, sink: sink}
}

// BatchOps processes query matches strictly sequentially. A failure on one
// message is logged and skipped; the final result reports the tally.
type BatchOps struct {
	svc   batchSvc
	pacer batch.Pacer
	sink  ProgressSink
}

func (t *BatchOps) BatchApplyLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchApplyLabelRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Applying label '%s' to messages matching query: '%s'", input.LabelName, input.Query))

	ids, err := t.searchIDs(ctx, input.Query, normalizeMaxResults(input.MaxMessages, 50, 500))
	if err != nil {
		return errorResult(t.sink, "Error batch applying label", err)
	}
	if len(ids) == 0 {
		return textResult(fmt.Sprintf("No messages found matching query: '%s'.", input.Query))
	}

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error batch applying label", err)
	}

	label := findLabel(labels, input.LabelName)
	if label == nil {
		t.sink.Info(fmt.Sprintf("Label '%s' not found. Creating new label.", input.LabelName))

		label, err = t.svc.CreateLabel(ctx, input.LabelName)
		if err != nil {
			return errorResult(t.sink, "Error batch applying label", err)
		}
	}

	tally := batch.Process(ctx, ids, t.pacer, t.sink.Progress, func(id string) error {
		_, err := t.svc.ModifyMessage(ctx, id, []string{label.Id}, nil)
		return err
	})
	for _, failed := range tally.Failed() {
		t.sink.Warn(fmt.Sprintf("Error applying label to message %s: %v", failed.ID, failed.Err))
	}

	return textResult(fmt.Sprintf(
		"Label '%s' applied to %s messages that matched your query.",
		input.LabelName, tally.Summary(),
	))
}

func (t *BatchOps) BatchDeleteEmails(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BatchDeleteEmailsRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info(fmt.Sprintf("Moving messages matching query '%s' to trash", input.Query))

	ids, err := t.searchIDs(ctx, input.Query, normalizeMaxResults(input.MaxMessages, 50, 500))
	if err != nil {
		return errorResult(t.sink, "Error batch deleting messages", err)
	}
	if len(ids) == 0 {
		return textResult(fmt.Sprintf("No messages found matching query: '%s'.", input.Query))
	}

	tally := batch.Process(ctx, ids, t.pacer, t.sink.Progress, func(id string) error {
		_, err := t.svc.TrashMessage(ctx, id)
		return err
	})
	for _, failed := range tally.Failed() {
		t.sink.Warn(fmt.Sprintf("Error deleting message %s: %v", failed.ID, failed.Err))
	}

	return textResult(fmt.Sprintf(
		"Moved %s messages that matched your query to trash.",
		tally.Summary(),
	))
}

func (t *BatchOps) searchIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	listing, err := t.svc.ListMessages(ctx, query, "", maxResults)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(listing.Messages))
	for _, m := range listing.Messages {
		ids = append(ids, m.Id)
	}

	return ids, nil
}
