// Package mail builds and decomposes Gmail MIME messages.
package mail

import (
	"mime"
	"os"
	"path/filepath"
)

// Envelope is the semantic content of an outgoing message.
type Envelope struct {
	From        string
	To          string
	CC          string
	BCC         string
	Subject     string
	PlainBody   string
	HTMLBody    string
	Importance  string
	Attachments []Attachment
}

// Attachment is a file carried by an outgoing message.
type Attachment struct {
	Filename  string
	Content   []byte
	ContentID string
	MimeType  string
}

// NewAttachment creates an attachment, deriving the MIME type from the
// filename extension when possible.
func NewAttachment(filename string, content []byte) Attachment {
	mimeType := mime.TypeByExtension(filepath.Ext(filename))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return Attachment{
		Filename: filename,
		Content:  content,
		MimeType: mimeType,
	}
}

// LoadAttachments reads every path into an attachment. Paths that cannot be
// read are returned separately; the caller decides whether partial content is
// acceptable.
func LoadAttachments(paths []string) ([]Attachment, []string) {
	var attachments []Attachment
	var missing []string

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			missing = append(missing, path)
			continue
		}
		attachments = append(attachments, NewAttachment(filepath.Base(path), content))
	}

	return attachments, missing
}
