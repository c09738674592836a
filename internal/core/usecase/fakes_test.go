package usecase

import (
	"context"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

type statusCall struct {
	documentID string
	status     domain.DocumentStatus
	errMsg     string
}

type docRepoFake struct {
	docs        map[string]*domain.Document
	byFilename  map[string]*domain.Document
	created     []*domain.Document
	statusCalls []statusCall

	createErr error
	getErr    error
	lookupErr error
	statusErr error
	// returned only when status==error, to exercise the combined path
	errStatusErr error
}

func newDocRepoFake() *docRepoFake {
	return &docRepoFake{
		docs:       map[string]*domain.Document{},
		byFilename: map[string]*domain.Document{},
	}
}

func (f *docRepoFake) add(doc *domain.Document) {
	f.docs[doc.ID] = doc
	f.byFilename[doc.Filename] = doc
}

func (f *docRepoFake) Create(_ context.Context, doc *domain.Document) error {
	if f.createErr != nil {
		return f.createErr
	}
	copyDoc := *doc
	f.created = append(f.created, &copyDoc)
	f.add(&copyDoc)
	return nil
}

func (f *docRepoFake) GetByID(_ context.Context, id string) (*domain.Document, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	doc, ok := f.docs[id]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document", nil)
	}
	copyDoc := *doc
	return &copyDoc, nil
}

func (f *docRepoFake) GetByFilename(_ context.Context, filename string) (*domain.Document, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	doc, ok := f.byFilename[filename]
	if !ok {
		return nil, domain.WrapError(domain.ErrDocumentNotFound, "get document by filename", nil)
	}
	copyDoc := *doc
	return &copyDoc, nil
}

func (f *docRepoFake) List(context.Context, int) ([]domain.Document, error) {
	out := make([]domain.Document, 0, len(f.docs))
	for _, doc := range f.docs {
		out = append(out, *doc)
	}
	return out, nil
}

func (f *docRepoFake) UpdateStatus(_ context.Context, id string, status domain.DocumentStatus, errMessage string) error {
	f.statusCalls = append(f.statusCalls, statusCall{documentID: id, status: status, errMsg: errMessage})
	if status == domain.StatusError && f.errStatusErr != nil {
		return f.errStatusErr
	}
	if f.statusErr != nil {
		return f.statusErr
	}
	if doc, ok := f.docs[id]; ok {
		doc.Status = status
		doc.Error = errMessage
	}
	return nil
}

type commitCall struct {
	result      domain.ProcessingResult
	status      domain.DocumentStatus
	processedAt time.Time
}

type resultRepoFake struct {
	commits   []commitCall
	latest    *domain.ProcessingResult
	commitErr error
	latestErr error
}

func (f *resultRepoFake) CommitAnalysis(_ context.Context, result *domain.ProcessingResult, status domain.DocumentStatus, processedAt time.Time) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.commits = append(f.commits, commitCall{result: *result, status: status, processedAt: processedAt})
	return nil
}

func (f *resultRepoFake) LatestByDocument(_ context.Context, documentID string) (*domain.ProcessingResult, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	if f.latest == nil {
		return nil, domain.WrapError(domain.ErrResultNotFound, "latest result", nil)
	}
	copyResult := *f.latest
	copyResult.DocumentID = documentID
	return &copyResult, nil
}

type queueFake struct {
	processed  []string
	prepared   []string
	sent       []string
	processErr error
	prepareErr error
	sendErr    error
}

func (f *queueFake) PublishProcessDocument(_ context.Context, documentID string) error {
	if f.processErr != nil {
		return f.processErr
	}
	f.processed = append(f.processed, documentID)
	return nil
}

func (f *queueFake) PublishPrepareEmail(_ context.Context, documentID string) error {
	if f.prepareErr != nil {
		return f.prepareErr
	}
	f.prepared = append(f.prepared, documentID)
	return nil
}

func (f *queueFake) PublishSendEmail(_ context.Context, documentID string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, documentID)
	return nil
}

type extractorFake struct {
	text string
	err  error
}

func (f *extractorFake) Extract(context.Context, *domain.Document) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type analyzerFake struct {
	report *domain.AnalysisReport
	err    error
	text   string
}

func (f *analyzerFake) Analyze(_ context.Context, documentID string, text string) (*domain.AnalysisReport, error) {
	f.text = text
	if f.err != nil {
		return nil, f.err
	}
	report := *f.report
	report.DocumentID = documentID
	return &report, nil
}

type refsFake struct {
	corpus domain.ReferenceCorpus
	err    error
}

func (f *refsFake) Snapshot(context.Context) (*domain.ReferenceCorpus, error) {
	if f.err != nil {
		return nil, f.err
	}
	corpus := f.corpus
	return &corpus, nil
}

type dispatcherFake struct {
	sent []*domain.EmailMessage
	err  error
}

func (f *dispatcherFake) Send(_ context.Context, msg *domain.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
