package usecase

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
	"github.com/cloudwisedk/docuprocess/internal/core/ports"
)

// The score in the rendered body uses the operator-facing 0-10 scale.
const emailBodyTemplate = `Dear Kundeansvarlig,

A new document has been processed successfully:

Document: {{.Filename}}
Status: {{.Status}}
Processing Score: {{printf "%.1f" .Score}}/10
Processed At: {{.ProcessedAt}}

Attached Files:
{{- range .Attachments}}
- {{.}}
{{- end}}

Best regards,
Document Processing System
`

type NotifyUseCase struct {
	repo       ports.DocumentRepository
	results    ports.ResultRepository
	queue      ports.TaskQueue
	dispatcher ports.MailDispatcher
	recipient  string
	tmpl       *template.Template
}

func NewNotifyUseCase(
	repo ports.DocumentRepository,
	results ports.ResultRepository,
	queue ports.TaskQueue,
	dispatcher ports.MailDispatcher,
	recipient string,
) *NotifyUseCase {
	return &NotifyUseCase{
		repo:       repo,
		results:    results,
		queue:      queue,
		dispatcher: dispatcher,
		recipient:  recipient,
		tmpl:       template.Must(template.New("email").Parse(emailBodyTemplate)),
	}
}

// PrepareEmail validates that the document has an approved status and a
// stored result, then hands the send off to the queue. The render happens
// here too so a broken prerequisite fails the prepare stage, not the send.
func (uc *NotifyUseCase) PrepareEmail(ctx context.Context, documentID string) error {
	if _, err := uc.buildMessage(ctx, documentID); err != nil {
		return err
	}
	if err := uc.queue.PublishSendEmail(ctx, documentID); err != nil {
		return fmt.Errorf("enqueue email send: %w", err)
	}
	return nil
}

func (uc *NotifyUseCase) SendEmail(ctx context.Context, documentID string) error {
	msg, err := uc.buildMessage(ctx, documentID)
	if err != nil {
		return err
	}
	if err := uc.dispatcher.Send(ctx, msg); err != nil {
		return fmt.Errorf("dispatch email: %w", err)
	}
	return nil
}

func (uc *NotifyUseCase) buildMessage(ctx context.Context, documentID string) (*domain.EmailMessage, error) {
	doc, err := uc.repo.GetByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	if doc.Status != domain.StatusAutoApproved && doc.Status != domain.StatusManuallyApproved {
		return nil, domain.WrapError(domain.ErrInvalidInput, "prepare email",
			fmt.Errorf("document %s in status %s is not approved", doc.ID, doc.Status))
	}

	result, err := uc.results.LatestByDocument(ctx, doc.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch processing result: %w", err)
	}

	processedAt := ""
	if doc.ProcessedAt != nil {
		processedAt = doc.ProcessedAt.UTC().Format("2006-01-02 15:04:05")
	}

	var body strings.Builder
	data := struct {
		Filename    string
		Status      domain.DocumentStatus
		Score       float64
		ProcessedAt string
		Attachments []string
	}{
		Filename:    doc.Filename,
		Status:      doc.Status,
		Score:       result.Scores.Overall * 10,
		ProcessedAt: processedAt,
		Attachments: []string{doc.FilePath},
	}
	if err := uc.tmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render email body: %w", err)
	}

	return &domain.EmailMessage{
		To:          uc.recipient,
		Subject:     fmt.Sprintf("Document Processed: %s", doc.Filename),
		Body:        body.String(),
		Attachments: []string{doc.FilePath},
	}, nil
}
