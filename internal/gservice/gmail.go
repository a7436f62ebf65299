// Package gservice wraps the Gmail REST API behind one method per operation.
package gservice

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/meyannis/mcpgmail/internal/auth"
)

const gmailUserID = "me"

// NewGmail creates a Gmail client bound to the OAuth config and token store.
func NewGmail(cfg *oauth2.Config, tok *auth.Token) *GMail {
	return &GMail{
		cfg: cfg,
		tok: tok,
	}
}

// GMail is the mail transport. Every method builds a fresh service from the
// current token, performs a single request/response exchange and wraps the
// error with context.
type GMail struct {
	cfg *oauth2.Config
	tok *auth.Token
}

func (m *GMail) ListMessages(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	call := svc.Users.Messages.List(gmailUserID).
		Q(Q).
		PageToken(pageToken).
		MaxResults(maxResults)

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("messages.List failed: %w", err)
	}

	return result, nil
}

func (m *GMail) GetMessageMetadata(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Get(gmailUserID, msgID).
		Format("METADATA").
		MetadataHeaders("From", "To", "Cc", "Subject", "Date").
		Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

func (m *GMail) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Get(gmailUserID, msgID).Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

// SendRaw sends a fully composed message, already base64url-encoded.
func (m *GMail) SendRaw(ctx context.Context, raw string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Send(gmailUserID, &gmail.Message{Raw: raw}).Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Send failed: %w", err)
	}

	return msg, nil
}

func (m *GMail) TrashMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Trash(gmailUserID, msgID).Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Trash failed: %w", err)
	}

	return msg, nil
}

// ModifyMessage adds and removes label IDs on a message in one call.
func (m *GMail) ModifyMessage(ctx context.Context, msgID string, addLabelIDs, removeLabelIDs []string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Modify(gmailUserID, msgID, &gmail.ModifyMessageRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Modify failed: %w", err)
	}

	return msg, nil
}

func (m *GMail) CreateDraft(ctx context.Context, raw string) (*gmail.Draft, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	draft, err := svc.Users.Drafts.Create(gmailUserID, &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("drafts.Create failed: %w", err)
	}

	return draft, nil
}

func (m *GMail) UpdateDraft(ctx context.Context, draftID, raw string) (*gmail.Draft, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	draft, err := svc.Users.Drafts.Update(gmailUserID, draftID, &gmail.Draft{
		Message: &gmail.Message{Raw: raw},
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("drafts.Update failed: %w", err)
	}

	return draft, nil
}

func (m *GMail) GetDraft(ctx context.Context, draftID string) (*gmail.Draft, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	draft, err := svc.Users.Drafts.Get(gmailUserID, draftID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("drafts.Get failed: %w", err)
	}

	return draft, nil
}

func (m *GMail) ListDrafts(ctx context.Context, maxResults int64) (*gmail.ListDraftsResponse, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	result, err := svc.Users.Drafts.List(gmailUserID).MaxResults(maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("drafts.List failed: %w", err)
	}

	return result, nil
}

// SendDraft sends an existing draft by ID and returns the sent message.
func (m *GMail) SendDraft(ctx context.Context, draftID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Drafts.Send(gmailUserID, &gmail.Draft{Id: draftID}).Do()
	if err != nil {
		return nil, fmt.Errorf("drafts.Send failed: %w", err)
	}

	return msg, nil
}

func (m *GMail) ListLabels(ctx context.Context) ([]*gmail.Label, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	result, err := svc.Users.Labels.List(gmailUserID).Do()
	if err != nil {
		return nil, fmt.Errorf("labels.List failed: %w", err)
	}

	return result.Labels, nil
}

func (m *GMail) CreateLabel(ctx context.Context, name string) (*gmail.Label, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	label, err := svc.Users.Labels.Create(gmailUserID, &gmail.Label{
		Name:                  name,
		LabelListVisibility:   "labelShow",
		MessageListVisibility: "show",
	}).Do()
	if err != nil {
		return nil, fmt.Errorf("labels.Create failed: %w", err)
	}

	return label, nil
}

func (m *GMail) DeleteLabel(ctx context.Context, labelID string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	if err := svc.Users.Labels.Delete(gmailUserID, labelID).Do(); err != nil {
		return fmt.Errorf("labels.Delete failed: %w", err)
	}

	return nil
}

func (m *GMail) GetProfile(ctx context.Context) (*gmail.Profile, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	profile, err := svc.Users.GetProfile(gmailUserID).Do()
	if err != nil {
		return nil, fmt.Errorf("getProfile failed: %w", err)
	}

	return profile, nil
}

func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	t, err := m.tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	clt := m.cfg.Client(ctx, t)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return svc, nil
}
