package tool_test

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/batch"
	"github.com/meyannis/mcpgmail/internal/tool"
)

type gmailSvcMock struct {
	GetProfileFunc         func(ctx context.Context) (*gmail.Profile, error)
	SendRawFunc            func(ctx context.Context, raw string) (*gmail.Message, error)
	CreateDraftFunc        func(ctx context.Context, raw string) (*gmail.Draft, error)
	UpdateDraftFunc        func(ctx context.Context, draftID, raw string) (*gmail.Draft, error)
	GetDraftFunc           func(ctx context.Context, draftID string) (*gmail.Draft, error)
	ListDraftsFunc         func(ctx context.Context, maxResults int64) (*gmail.ListDraftsResponse, error)
	SendDraftFunc          func(ctx context.Context, draftID string) (*gmail.Message, error)
	GetMessageMetadataFunc func(ctx context.Context, msgID string) (*gmail.Message, error)
	ListMessagesFunc       func(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
	GetMessageFunc         func(ctx context.Context, msgID string) (*gmail.Message, error)
	ListLabelsFunc         func(ctx context.Context) ([]*gmail.Label, error)
	CreateLabelFunc        func(ctx context.Context, name string) (*gmail.Label, error)
	DeleteLabelFunc        func(ctx context.Context, labelID string) error
	ModifyMessageFunc      func(ctx context.Context, msgID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error)
	TrashMessageFunc       func(ctx context.Context, msgID string) (*gmail.Message, error)
}

func (m *gmailSvcMock) GetProfile(ctx context.Context) (*gmail.Profile, error) {
	return m.GetProfileFunc(ctx)
}

func (m *gmailSvcMock) SendRaw(ctx context.Context, raw string) (*gmail.Message, error) {
	return m.SendRawFunc(ctx, raw)
}

func (m *gmailSvcMock) CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error) {
	return m.CreateDraftFunc(ctx, raw)
}

func (m *gmailSvcMock) UpdateDraft(ctx context.Context, draftID, raw string) (*gmail.Draft, error) {
	return m.UpdateDraftFunc(ctx, draftID, raw)
}

func (m *gmailSvcMock) GetDraft(ctx context.Context, draftID string) (*gmail.Draft, error) {
	return m.GetDraftFunc(ctx, draftID)
}

func (m *gmailSvcMock) ListDrafts(ctx context.Context, maxResults int64) (*gmail.ListDraftsResponse, error) {
	return m.ListDraftsFunc(ctx, maxResults)
}

func (m *gmailSvcMock) SendDraft(ctx context.Context, draftID string) (*gmail.Message, error) {
	return m.SendDraftFunc(ctx, draftID)
}

func (m *gmailSvcMock) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageMetadataFunc(ctx, msgID)
}

func (m *gmailSvcMock) ListMessages(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	return m.ListMessagesFunc(ctx, Q, pageToken, maxResults)
}

func (m *gmailSvcMock) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.GetMessageFunc(ctx, msgID)
}

func (m *gmailSvcMock) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	return m.ListLabelsFunc(ctx)
}

func (m *gmailSvcMock) CreateLabel(ctx context.Context, name string) (*gmail.Label, error) {
	return m.CreateLabelFunc(ctx, name)
}

func (m *gmailSvcMock) DeleteLabel(ctx context.Context, labelID string) error {
	return m.DeleteLabelFunc(ctx, labelID)
}

func (m *gmailSvcMock) ModifyMessage(ctx context.Context, msgID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error) {
	return m.ModifyMessageFunc(ctx, msgID, addLabelIDs, removeLabelIDs)
}

func (m *gmailSvcMock) TrashMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	return m.TrashMessageFunc(ctx, msgID)
}

// newTestSession connects an in-memory MCP client to a server backed by the
// mock, with no pacing between batch calls.
func newTestSession(t *testing.T, svc *gmailSvcMock) *mcp.ClientSession {
	t.Helper()

	server := tool.NewServer(svc, batch.None{}, tool.LogSink{})
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSession.Close() })

	return clientSession
}

// callText invokes a tool and returns its single text result.
func callText(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	return result.Content[0].(*mcp.TextContent).Text
}
