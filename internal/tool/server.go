package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/meyannis/mcpgmail/internal/batch"
)

type gmailSvc interface {
	sendSvc
	draftsSvc
	searchSvc
	readSvc
	labelsSvc
	messagesSvc
	batchSvc
	profileSvc
}

// NewServer creates an MCP server with the full Gmail tool surface.
func NewServer(svc gmailSvc, pacer batch.Pacer, sink ProgressSink) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "gmail-mcp", Version: "v1.0.0"}, nil)

	send := NewSendEmail(svc, sink)
	drafts := NewDrafts(svc, sink)
	search := NewSearchEmails(svc, sink)
	read := NewReadEmail(svc, sink)
	labels := NewLabels(svc, sink)
	messages := NewMessages(svc, sink)
	batchOps := NewBatchOps(svc, pacer, sink)
	profile := NewProfile(svc, sink)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_email",
		Description: "Send an email with plain text and optional HTML body",
	}, send.SendEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_email_with_attachments",
		Description: "Send an email with file attachments",
	}, send.SendEmailWithAttachments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_email_draft",
		Description: "Create a new email draft",
	}, drafts.CreateEmailDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_email_draft",
		Description: "Update an existing draft; omitted fields are preserved",
	}, drafts.UpdateEmailDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_draft",
		Description: "Send an existing draft by ID",
	}, drafts.SendDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_email_drafts",
		Description: "List email drafts with subject and recipient",
	}, drafts.ListEmailDrafts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_emails",
		Description: "Search emails using Gmail search syntax",
	}, search.SearchEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_email",
		Description: "Read a full email including its body and attachments",
	}, read.ReadEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_unread_emails",
		Description: "List unread emails",
	}, search.GetUnreadEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_important_emails",
		Description: "List emails marked as important",
	}, search.GetImportantEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_emails_with_attachments",
		Description: "List emails that carry attachments",
	}, search.GetEmailsWithAttachments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_recent_emails",
		Description: "List emails received in the last N days",
	}, search.GetRecentEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "summarize_recent_emails",
		Description: "Summarize recent emails in a concise format",
	}, search.SummarizeRecentEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_email_labels",
		Description: "List all Gmail labels",
	}, labels.GetEmailLabels)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_email_label",
		Description: "Create a new label",
	}, labels.CreateEmailLabel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_email_label",
		Description: "Delete a user label by name",
	}, labels.DeleteEmailLabel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "label_email",
		Description: "Apply a label to a message, creating it when missing",
	}, labels.LabelEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_email_label",
		Description: "Remove a label from a message",
	}, labels.RemoveEmailLabel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_as_read",
		Description: "Mark a message as read",
	}, messages.MarkAsRead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_as_unread",
		Description: "Mark a message as unread",
	}, messages.MarkAsUnread)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_email",
		Description: "Move a message to trash",
	}, messages.DeleteEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_apply_label",
		Description: "Apply a label to every message matching a query",
	}, batchOps.BatchApplyLabel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "batch_delete_emails",
		Description: "Move every message matching a query to trash",
	}, batchOps.BatchDeleteEmails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_email_profile",
		Description: "Get account profile, storage usage and label counts",
	}, profile.GetEmailProfile)

	return server
}
