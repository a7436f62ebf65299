package mail

import (
	"encoding/base64"
	"fmt"
	"mime"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

// BodyPlaceholder is the resolved body of a message with no extractable text.
const BodyPlaceholder = "Unable to extract email body content. The email might be empty or contain only non-text attachments."

// AttachmentInfo describes an attachment found during decomposition.
type AttachmentInfo struct {
	Filename string
	MimeType string
	Size     string
}

type fragment struct {
	mimeType string
	text     string
}

// Decompose walks a message part tree depth-first and returns the best
// available text body together with the attachments found along the way.
// Attachment collection is skipped when wantAttachments is false.
//
// A part carrying inline data is a content leaf and is never also treated as
// a container. A part with a filename and no data is an attachment leaf.
// Anything else recurses into its children in document order.
func Decompose(root *gmail.MessagePart, wantAttachments bool) (string, []AttachmentInfo) {
	fragments, attachments := collectParts(root, wantAttachments, nil, nil)

	return resolveBody(fragments), attachments
}

func collectParts(part *gmail.MessagePart, wantAttachments bool, fragments []fragment, attachments []AttachmentInfo) ([]fragment, []AttachmentInfo) {
	if part == nil {
		return fragments, attachments
	}

	if part.Body != nil && part.Body.Data != "" {
		mimeType := part.MimeType
		if mimeType == "" {
			mimeType = "text/plain"
		}
		fragments = append(fragments, fragment{
			mimeType: mimeType,
			text:     decodeBase64URL(part.Body.Data),
		})

		return fragments, attachments
	}

	if part.Filename != "" {
		if wantAttachments {
			mimeType := part.MimeType
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
			var size int64
			if part.Body != nil {
				size = part.Body.Size
			}
			attachments = append(attachments, AttachmentInfo{
				Filename: part.Filename,
				MimeType: mimeType,
				Size:     FormatSize(size),
			})
		}

		return fragments, attachments
	}

	for _, child := range part.Parts {
		fragments, attachments = collectParts(child, wantAttachments, fragments, attachments)
	}

	return fragments, attachments
}

// resolveBody prefers plain text fragments, joined with newlines. Without any,
// the first HTML fragment is reduced to text. Without either, a placeholder.
func resolveBody(fragments []fragment) string {
	var plain []string
	var html string
	hasHTML := false

	for _, f := range fragments {
		switch f.mimeType {
		case "text/plain":
			plain = append(plain, f.text)
		case "text/html":
			if !hasHTML {
				html = f.text
				hasHTML = true
			}
		}
	}

	if len(plain) > 0 {
		return strings.Join(plain, "\n")
	}
	if hasHTML {
		return htmlToText(html)
	}

	return BodyPlaceholder
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}

	return strings.ToValidUTF8(string(decoded), "�")
}

// FormatSize renders a byte count with binary units, one decimal for KB/MB.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d bytes", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

// HeaderValue returns the value of the first header matching name
// case-insensitively, or def when absent.
func HeaderValue(headers []*gmail.MessagePartHeader, name, def string) string {
	for _, h := range headers {
		if h != nil && strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}

	return def
}

const rfc5322Date = "Mon, 2 Jan 2006 15:04:05 -0700"

// FormatDate reformats an RFC 5322 date header as "2006-01-02 15:04".
// Unparseable values pass through unchanged.
func FormatDate(raw string) string {
	t, err := time.Parse(rfc5322Date, raw)
	if err != nil {
		return raw
	}

	return t.Format("2006-01-02 15:04")
}

// DecodeSubject decodes encoded-word subjects, keeping the raw value on failure.
func DecodeSubject(raw string) string {
	decoded, err := new(mime.WordDecoder).DecodeHeader(raw)
	if err != nil {
		return raw
	}

	return decoded
}
