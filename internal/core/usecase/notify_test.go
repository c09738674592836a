package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

func notifyFixture(status domain.DocumentStatus, overall float64) (*docRepoFake, *resultRepoFake) {
	repo := newDocRepoFake()
	processedAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	repo.add(&domain.Document{
		ID:          "doc-1",
		Filename:    "invoice_123.pdf",
		FilePath:    "/watch/invoice_123.pdf",
		Status:      status,
		ProcessedAt: &processedAt,
	})
	results := &resultRepoFake{latest: &domain.ProcessingResult{
		ID:     "res-1",
		Scores: domain.ScoreSet{Overall: overall},
	}}
	return repo, results
}

func TestPrepareEmailEnqueuesSend(t *testing.T) {
	repo, results := notifyFixture(domain.StatusAutoApproved, 0.85)
	queue := &queueFake{}
	uc := NewNotifyUseCase(repo, results, queue, &dispatcherFake{}, "approvals@example.com")

	if err := uc.PrepareEmail(context.Background(), "doc-1"); err != nil {
		t.Fatalf("PrepareEmail() error = %v", err)
	}
	if len(queue.sent) != 1 || queue.sent[0] != "doc-1" {
		t.Fatalf("expected send task for doc-1, got %v", queue.sent)
	}
}

func TestPrepareEmailRejectsUnapprovedDocument(t *testing.T) {
	repo, results := notifyFixture(domain.StatusQuickReview, 0.5)
	queue := &queueFake{}
	uc := NewNotifyUseCase(repo, results, queue, &dispatcherFake{}, "approvals@example.com")

	err := uc.PrepareEmail(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if len(queue.sent) != 0 {
		t.Fatalf("unapproved document must not enqueue send")
	}
}

func TestPrepareEmailMissingResult(t *testing.T) {
	repo, _ := notifyFixture(domain.StatusAutoApproved, 0)
	results := &resultRepoFake{}
	uc := NewNotifyUseCase(repo, results, &queueFake{}, &dispatcherFake{}, "approvals@example.com")

	err := uc.PrepareEmail(context.Background(), "doc-1")
	if !domain.IsKind(err, domain.ErrResultNotFound) {
		t.Fatalf("expected result not found error, got %v", err)
	}
}

func TestSendEmailRendersMessage(t *testing.T) {
	repo, results := notifyFixture(domain.StatusManuallyApproved, 0.62)
	dispatcher := &dispatcherFake{}
	uc := NewNotifyUseCase(repo, results, &queueFake{}, dispatcher, "approvals@example.com")

	if err := uc.SendEmail(context.Background(), "doc-1"); err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	if len(dispatcher.sent) != 1 {
		t.Fatalf("expected 1 dispatched email, got %d", len(dispatcher.sent))
	}
	msg := dispatcher.sent[0]
	if msg.To != "approvals@example.com" {
		t.Fatalf("unexpected recipient %s", msg.To)
	}
	if msg.Subject != "Document Processed: invoice_123.pdf" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	// human-facing score is reported on the 0-10 scale
	if !strings.Contains(msg.Body, "Processing Score: 6.2/10") {
		t.Fatalf("expected scaled score in body, got:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "Status: manually_approved") {
		t.Fatalf("expected status line in body, got:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "Processed At: 2025-03-14 09:26:53") {
		t.Fatalf("expected processed timestamp in body, got:\n%s", msg.Body)
	}
	if !strings.Contains(msg.Body, "- /watch/invoice_123.pdf") {
		t.Fatalf("expected attachment listing in body, got:\n%s", msg.Body)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0] != "/watch/invoice_123.pdf" {
		t.Fatalf("unexpected attachments %v", msg.Attachments)
	}
}

func TestSendEmailDispatchFailure(t *testing.T) {
	repo, results := notifyFixture(domain.StatusAutoApproved, 0.9)
	uc := NewNotifyUseCase(repo, results, &queueFake{}, &dispatcherFake{err: errors.New("smtp down")}, "approvals@example.com")

	if err := uc.SendEmail(context.Background(), "doc-1"); err == nil {
		t.Fatalf("expected dispatch error")
	}
}
