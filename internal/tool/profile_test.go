package tool_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"

	"github.com/meyannis/mcpgmail/internal/tool"
)

func TestGetEmailProfile(t *testing.T) {
	svc := &gmailSvcMock{
		GetProfileFunc: func(context.Context) (*gmail.Profile, error) {
			return &gmail.Profile{
				EmailAddress:    "me@example.com",
				QuotaBytesTotal: 15 * 1024 * 1024 * 1024,
				QuotaBytesUsed:  3 * 1024 * 1024 * 1024,
			}, nil
		},
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return []*gmail.Label{
				{Id: "INBOX", Name: "INBOX", Type: "system"},
				{Id: "Label_1", Name: "Work", Type: "user"},
				{Id: "Label_2", Name: "Personal", Type: "user"},
			}, nil
		},
		ListMessagesFunc: func(_ context.Context, Q, _ string, maxResults int64) (*gmail.ListMessagesResponse, error) {
			assert.Equal(t, "", Q)
			assert.Equal(t, int64(1), maxResults)
			return &gmail.ListMessagesResponse{ResultSizeEstimate: 1234}, nil
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "get_email_profile", tool.GetEmailProfileRequest{})
	assert.Contains(t, text, "Email Address: me@example.com")
	assert.Contains(t, text, "Storage Used: 3.00 GB of 15.00 GB")
	assert.Contains(t, text, "Storage Usage: 20.00%")
	assert.Contains(t, text, "Total Labels: 3 (2 user labels)")
	assert.Contains(t, text, "Estimated Message Count: 1234")
}

func TestGetEmailProfileEstimateFailureTolerated(t *testing.T) {
	svc := &gmailSvcMock{
		GetProfileFunc: func(context.Context) (*gmail.Profile, error) {
			return &gmail.Profile{EmailAddress: "me@example.com"}, nil
		},
		ListLabelsFunc: func(context.Context) ([]*gmail.Label, error) {
			return nil, nil
		},
		ListMessagesFunc: func(context.Context, string, string, int64) (*gmail.ListMessagesResponse, error) {
			return nil, fmt.Errorf("rate limited")
		},
	}

	session := newTestSession(t, svc)

	text := callText(t, session, "get_email_profile", tool.GetEmailProfileRequest{})
	assert.Contains(t, text, "Email Address: me@example.com")
	assert.NotContains(t, text, "Storage Used")
	assert.NotContains(t, text, "Estimated Message Count")
}
