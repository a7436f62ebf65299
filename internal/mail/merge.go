package mail

import (
	"errors"

	"google.golang.org/api/gmail/v1"
)

// ErrNoBody indicates a draft update that resolves to no body content at all.
var ErrNoBody = errors.New("draft update resolves to no body content")

// DraftUpdate is a partial update of an existing draft. A nil field preserves
// the draft's current value; a pointer to the empty string clears it.
type DraftUpdate struct {
	To       *string
	Subject  *string
	Body     *string
	CC       *string
	BCC      *string
	HTMLBody *string
}

// Merge reconciles upd against the draft's current message and returns the
// envelope to recompose. The From address is always re-stamped with the
// caller-supplied current account address, regardless of what the draft held.
//
// When neither body field is supplied, both are recovered from the existing
// payload: a single inline part is checked by its MIME type, a multipart
// payload is scanned shallowly for the first plain and first html children.
// The plain body falls back to the empty string so the recomposed message
// always carries a plain part.
func Merge(existing *gmail.Message, upd DraftUpdate, from string) (Envelope, error) {
	var payload *gmail.MessagePart
	if existing != nil {
		payload = existing.Payload
	}
	var headers []*gmail.MessagePartHeader
	if payload != nil {
		headers = payload.Headers
	}

	env := Envelope{
		From:    from,
		To:      resolveField(upd.To, headers, "To"),
		Subject: resolveField(upd.Subject, headers, "Subject"),
		CC:      resolveField(upd.CC, headers, "Cc"),
		BCC:     resolveField(upd.BCC, headers, "Bcc"),
	}

	plain, html := upd.Body, upd.HTMLBody
	if plain == nil && html == nil {
		plain, html = extractDraftBodies(payload)
		if plain == nil {
			plain = new(string)
		}
	}
	if plain == nil && html == nil {
		return Envelope{}, ErrNoBody
	}

	if plain != nil {
		env.PlainBody = *plain
	}
	if html != nil {
		env.HTMLBody = *html
	}

	return env, nil
}

func resolveField(val *string, headers []*gmail.MessagePartHeader, name string) string {
	if val != nil {
		return *val
	}

	return HeaderValue(headers, name, "")
}

// extractDraftBodies is intentionally shallow: unlike Decompose it does not
// descend into nested multiparts, it only inspects the payload itself or its
// direct children.
func extractDraftBodies(payload *gmail.MessagePart) (plain, html *string) {
	if payload == nil {
		return nil, nil
	}

	if len(payload.Parts) == 0 {
		if payload.Body == nil || payload.Body.Data == "" {
			return nil, nil
		}
		text := decodeBase64URL(payload.Body.Data)
		switch payload.MimeType {
		case "text/plain":
			plain = &text
		case "text/html":
			html = &text
		}

		return plain, html
	}

	for _, part := range payload.Parts {
		if part == nil || part.Body == nil || part.Body.Data == "" {
			continue
		}
		text := decodeBase64URL(part.Body.Data)
		switch part.MimeType {
		case "text/plain":
			if plain == nil {
				plain = &text
			}
		case "text/html":
			if html == nil {
				html = &text
			}
		}
	}

	return plain, html
}
