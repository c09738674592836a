package docfile

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"strings"
)

func extractEMLFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open eml: %w", err)
	}
	defer f.Close()
	return extractEML(f)
}

// extractEML returns the subject line followed by every text part of the
// message. Attachments and non-text parts are skipped; the PDF they carry
// arrives as its own watched file.
func extractEML(r io.Reader) (string, error) {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		return "", fmt.Errorf("parse eml: %w", err)
	}

	var parts []string
	if subject := strings.TrimSpace(msg.Header.Get("Subject")); subject != "" {
		parts = append(parts, subject)
	}

	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		body, err := decodeBody(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return "", err
		}
		if body != "" {
			parts = append(parts, body)
		}
		return strings.TrimSpace(strings.Join(parts, "\n")), nil
	}

	mr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read eml part: %w", err)
		}
		partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
		if !strings.HasPrefix(partType, "text/") {
			continue
		}
		body, err := decodeBody(part, part.Header.Get("Content-Transfer-Encoding"))
		if err != nil {
			return "", err
		}
		if body != "" {
			parts = append(parts, body)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n")), nil
}

func decodeBody(r io.Reader, encoding string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		r = quotedprintable.NewReader(r)
	case "base64":
		r = base64.NewDecoder(base64.StdEncoding, r)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read eml body: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
