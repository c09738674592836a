package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

func newReferenceRepoWithMock(t *testing.T) (*ReferenceRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &ReferenceRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestSnapshotReadsAllTablesInOneTx(t *testing.T) {
	repo, mock, done := newReferenceRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, COALESCE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(int64(1), "Lars Jensen", "lars@example.com", "+45 12 34 56 78"))
	mock.ExpectQuery("SELECT id, policy_number, customer_id, policy_type, status FROM policies").
		WillReturnRows(sqlmock.NewRows([]string{"id", "policy_number", "customer_id", "policy_type", "status"}).
			AddRow(int64(1), "POL123456", int64(1), "auto", "active"))
	mock.ExpectQuery("SELECT id, invoice_number, customer_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "invoice_number", "customer_id", "policy_id", "amount", "invoice_date", "due_date", "status"}).
			AddRow(int64(1), "INV-2024-001", int64(1), int64(1), 1250.50, nil, nil, "open"))
	mock.ExpectQuery("SELECT id, transaction_id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "invoice_id", "customer_id", "amount", "transaction_date", "transaction_type", "payment_method", "status", "reference_number"}).
			AddRow(int64(1), "TXN-98765", int64(1), int64(1), 1250.50, nil, "payment", "card", "settled", "REF-555"))
	mock.ExpectCommit()

	corpus, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if len(corpus.Customers) != 1 || corpus.Customers[0].Name != "Lars Jensen" {
		t.Fatalf("unexpected customers %+v", corpus.Customers)
	}
	if len(corpus.Policies) != 1 || corpus.Policies[0].PolicyNumber != "POL123456" {
		t.Fatalf("unexpected policies %+v", corpus.Policies)
	}
	if len(corpus.Invoices) != 1 || corpus.Invoices[0].Amount != 1250.50 {
		t.Fatalf("unexpected invoices %+v", corpus.Invoices)
	}
	if len(corpus.Transactions) != 1 || corpus.Transactions[0].TransactionID != "TXN-98765" {
		t.Fatalf("unexpected transactions %+v", corpus.Transactions)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSnapshotAbortsOnQueryError(t *testing.T) {
	repo, mock, done := newReferenceRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, name, COALESCE").
		WillReturnError(errors.New("relation does not exist"))
	mock.ExpectRollback()

	if _, err := repo.Snapshot(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertCustomerUpsertsOnEmail(t *testing.T) {
	repo, mock, done := newReferenceRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO customers .* ON CONFLICT \(email\) DO UPDATE`).
		WithArgs("Lars Jensen", "lars@example.com", "+45 12 34 56 78").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.InsertCustomer(context.Background(), domain.Customer{
		Name:  "Lars Jensen",
		Email: "lars@example.com",
		Phone: "+45 12 34 56 78",
	})
	if err != nil {
		t.Fatalf("InsertCustomer() error = %v", err)
	}
	if id != 7 {
		t.Fatalf("expected existing row id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestInsertTransactionUpsertsOnTransactionID(t *testing.T) {
	repo, mock, done := newReferenceRepoWithMock(t)
	defer done()

	mock.ExpectQuery(`INSERT INTO transactions .* ON CONFLICT \(transaction_id\) DO UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := repo.InsertTransaction(context.Background(), domain.Transaction{
		TransactionID: "TXN-98765",
		CustomerID:    1,
		Amount:        1250.50,
	})
	if err != nil {
		t.Fatalf("InsertTransaction() error = %v", err)
	}
	if id != 3 {
		t.Fatalf("expected existing row id 3, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
