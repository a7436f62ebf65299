package mail

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Mode selects the outer MIME structure of a composed message.
type Mode int

const (
	// ModeAlternative builds a bare multipart/alternative container.
	ModeAlternative Mode = iota
	// ModeMixed wraps the alternative container and the attachments in an
	// outer multipart/mixed container.
	ModeMixed
)

// Compose serializes env into an RFC 5322 message and returns it
// base64url-encoded, ready for the Gmail API "raw" field. The plain body is
// always emitted first so clients fall back to it when they cannot render
// HTML. No Date header is written; the server assigns it.
func Compose(env Envelope, mode Mode) (string, error) {
	altType, altBody, err := alternativeBody(env)
	if err != nil {
		return "", fmt.Errorf("alternativeBody failed: %w", err)
	}

	var buf bytes.Buffer
	writeCommonHeaders(&buf, env)

	if mode == ModeAlternative {
		writeHeader(&buf, "Content-Type", altType)
		buf.WriteString("\r\n")
		buf.Write(altBody)

		return encodeRaw(buf.Bytes()), nil
	}

	mw := multipart.NewWriter(&buf)
	writeHeader(&buf, "Content-Type", fmt.Sprintf("multipart/mixed; boundary=%q", mw.Boundary()))
	buf.WriteString("\r\n")

	altHeader := textproto.MIMEHeader{}
	altHeader.Set("Content-Type", altType)
	pw, err := mw.CreatePart(altHeader)
	if err != nil {
		return "", fmt.Errorf("mw.CreatePart failed: %w", err)
	}
	if _, err := pw.Write(altBody); err != nil {
		return "", fmt.Errorf("pw.Write failed: %w", err)
	}

	for _, att := range env.Attachments {
		if err := writeAttachment(mw, att); err != nil {
			return "", fmt.Errorf("writeAttachment %s failed: %w", att.Filename, err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("mw.Close failed: %w", err)
	}

	return encodeRaw(buf.Bytes()), nil
}

// ComposeUpdate serializes a merged draft envelope. An HTML body forces
// multipart/alternative with an explicit plain part; a plain-only body is
// emitted as a single text/plain part without a multipart wrapper.
func ComposeUpdate(env Envelope) (string, error) {
	if env.HTMLBody != "" {
		return Compose(env, ModeAlternative)
	}

	var buf bytes.Buffer
	writeCommonHeaders(&buf, env)
	writeHeader(&buf, "Content-Type", `text/plain; charset="UTF-8"`)
	buf.WriteString("\r\n")
	buf.WriteString(env.PlainBody)

	return encodeRaw(buf.Bytes()), nil
}

func alternativeBody(env Envelope) (contentType string, body []byte, err error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := writeTextPart(mw, "text/plain", env.PlainBody); err != nil {
		return "", nil, fmt.Errorf("writeTextPart plain failed: %w", err)
	}
	if env.HTMLBody != "" {
		if err := writeTextPart(mw, "text/html", env.HTMLBody); err != nil {
			return "", nil, fmt.Errorf("writeTextPart html failed: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", nil, fmt.Errorf("mw.Close failed: %w", err)
	}

	return fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()), buf.Bytes(), nil
}

func writeTextPart(mw *multipart.Writer, mimeType, body string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", mimeType+`; charset="UTF-8"`)

	pw, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("mw.CreatePart failed: %w", err)
	}

	_, err = io.WriteString(pw, body)

	return err
}

func writeAttachment(mw *multipart.Writer, att Attachment) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", att.MimeType)
	header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
	header.Set("Content-Transfer-Encoding", "base64")
	if att.ContentID != "" {
		header.Set("Content-ID", "<"+att.ContentID+">")
	}

	pw, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("mw.CreatePart failed: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(att.Content)
	for len(encoded) > 0 {
		n := min(len(encoded), 76)
		if _, err := io.WriteString(pw, encoded[:n]+"\r\n"); err != nil {
			return fmt.Errorf("pw.Write failed: %w", err)
		}
		encoded = encoded[n:]
	}

	return nil
}

func writeCommonHeaders(buf *bytes.Buffer, env Envelope) {
	writeHeader(buf, "To", env.To)
	writeHeader(buf, "Subject", env.Subject)
	writeHeader(buf, "From", env.From)

	if env.CC != "" {
		writeHeader(buf, "Cc", env.CC)
	}
	if env.BCC != "" {
		writeHeader(buf, "Bcc", env.BCC)
	}

	// Unrecognized importance values carry no headers at all.
	switch strings.ToLower(env.Importance) {
	case "high":
		writeHeader(buf, "Importance", "high")
		writeHeader(buf, "X-Priority", "1")
	case "low":
		writeHeader(buf, "Importance", "low")
		writeHeader(buf, "X-Priority", "5")
	}

	writeHeader(buf, "MIME-Version", "1.0")
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func encodeRaw(msg []byte) string {
	return base64.URLEncoding.EncodeToString(msg)
}
