package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
)

// GetEmailProfileRequest has no parameters.
type GetEmailProfileRequest struct{}

type profileSvc interface {
	GetProfile(ctx context.Context) (*gmail.Profile, error)
	ListLabels(ctx context.Context) ([]*gmail.Label, error)
	ListMessages(ctx context.Context, Q, pageToken string, maxResults int64) (*gmail.ListMessagesResponse, error)
}

// NewProfile creates the account information tool.
func NewProfile(svc profileSvc, sink ProgressSink) *Profile {
	return &Profile{svc: svc, sink: sink}
}

// Profile reports the account address, storage usage, label counts and an
// estimated message count.
type Profile struct {
	svc  profileSvc
	sink ProgressSink
}

func (t *Profile) GetEmailProfile(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ GetEmailProfileRequest,
) (*mcp.CallToolResult, any, error) {
	t.sink.Info("Getting Gmail profile information")

	profile, err := t.svc.GetProfile(ctx)
	if err != nil {
		return errorResult(t.sink, "Error getting Gmail profile", err)
	}
	if profile == nil {
		return textResult("Could not retrieve Gmail profile information.")
	}

	var b strings.Builder
	b.WriteString("Gmail Profile Information:\n\n")

	address := profile.EmailAddress
	if address == "" {
		address = "Unknown"
	}
	fmt.Fprintf(&b, "Email Address: %s\n", address)

	if profile.QuotaBytesTotal > 0 {
		fmt.Fprintf(&b, "Storage Used: %s of %s\n",
			formatQuota(profile.QuotaBytesUsed), formatQuota(profile.QuotaBytesTotal))
		fmt.Fprintf(&b, "Storage Usage: %.2f%%\n",
			float64(profile.QuotaBytesUsed)/float64(profile.QuotaBytesTotal)*100)
	}

	labels, err := t.svc.ListLabels(ctx)
	if err != nil {
		return errorResult(t.sink, "Error getting Gmail profile", err)
	}

	userLabels := 0
	for _, label := range labels {
		if label.Type == "user" {
			userLabels++
		}
	}
	fmt.Fprintf(&b, "Total Labels: %d (%d user labels)\n", len(labels), userLabels)

	// Estimate only: an empty query with a single-result page still reports
	// the mailbox-wide size estimate. Failure here is not worth failing the
	// whole tool over.
	if listing, err := t.svc.ListMessages(ctx, "", "", 1); err == nil {
		fmt.Fprintf(&b, "Estimated Message Count: %d\n", listing.ResultSizeEstimate)
	}

	return textResult(b.String())
}

// formatQuota renders byte counts with two decimals, topping out at GB.
// mail.FormatSize stops at MB and uses one decimal; storage numbers want the
// larger unit.
func formatQuota(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	case size < 1024*1024*1024:
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	default:
		return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
	}
}
