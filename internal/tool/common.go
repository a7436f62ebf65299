// Package tool implements the Gmail MCP tools.
//
// Every tool returns a single human-readable text result. Failures of any
// kind, whether validation, a missing target or a rejected API call, are
// reported inside that text and never surface as a protocol error, so a
// misbehaving mailbox can never terminate the caller's session.
package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

const resultDivider = "--------------------------------------------------"

func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult reports err through the sink and as the tool's text result.
func errorResult(sink ProgressSink, context string, err error) (*mcp.CallToolResult, any, error) {
	msg := fmt.Sprintf("%s: %v", context, err)
	sink.Error(msg)

	return textResult(msg)
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}

func normalizeMaxResults(maxResults, def, limit int64) int64 {
	if maxResults <= 0 {
		return def
	}
	if maxResults > limit {
		return limit
	}
	return maxResults
}

// findLabel matches a label by name, case-insensitively.
func findLabel(labels []*gmail.Label, name string) *gmail.Label {
	for _, label := range labels {
		if label != nil && strings.EqualFold(label.Name, name) {
			return label
		}
	}

	return nil
}

func hasAttachmentParts(payload *gmail.MessagePart) bool {
	if payload == nil {
		return false
	}
	for _, part := range payload.Parts {
		if part != nil && part.Filename != "" {
			return true
		}
	}

	return false
}
