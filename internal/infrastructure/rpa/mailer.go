// Package rpa sends outbound mail through the desktop automation gateway
// that owns the shared mailbox.
package rpa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/infrastructure/resilience"
)

type Mailer struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func NewMailer(baseURL string, executor *resilience.Executor) *Mailer {
	return &Mailer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

func (m *Mailer) Send(ctx context.Context, msg *domain.EmailMessage) error {
	request := map[string]any{
		"to":          msg.To,
		"subject":     msg.Subject,
		"body":        msg.Body,
		"attachments": msg.Attachments,
	}

	call := func(ctx context.Context) error {
		return m.postJSON(ctx, "/v1/mail/send", request, "send")
	}

	var err error
	if m.executor != nil {
		err = m.executor.Execute(ctx, "rpa.send", call, classifyHTTPError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded("rpa send", err)
	}
	return nil
}

func (m *Mailer) postJSON(ctx context.Context, path string, payload any, operation string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rpa %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
