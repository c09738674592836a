package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

type ReferenceRepository struct {
	db *sql.DB
}

func NewReferenceRepository(db *sql.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// Snapshot reads all four reference tables inside one read-only
// transaction so a scoring pass never sees a half-applied corpus update.
func (r *ReferenceRepository) Snapshot(ctx context.Context) (*domain.ReferenceCorpus, error) {
	corpus := &domain.ReferenceCorpus{}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	corpus.Customers, err = r.customers(ctx, tx)
	if err != nil {
		return nil, err
	}
	corpus.Policies, err = r.policies(ctx, tx)
	if err != nil {
		return nil, err
	}
	corpus.Invoices, err = r.invoices(ctx, tx)
	if err != nil {
		return nil, err
	}
	corpus.Transactions, err = r.transactions(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return corpus, nil
}

func (r *ReferenceRepository) customers(ctx context.Context, tx *sql.Tx) ([]domain.Customer, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, COALESCE(email, ''), phone FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) policies(ctx context.Context, tx *sql.Tx) ([]domain.Policy, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, policy_number, customer_id, policy_type, status FROM policies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query policies: %w", err)
	}
	defer rows.Close()

	var out []domain.Policy
	for rows.Next() {
		var p domain.Policy
		if err := rows.Scan(&p.ID, &p.PolicyNumber, &p.CustomerID, &p.PolicyType, &p.Status); err != nil {
			return nil, fmt.Errorf("scan policy: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) invoices(ctx context.Context, tx *sql.Tx) ([]domain.Invoice, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, invoice_number, customer_id, COALESCE(policy_id, 0), amount, invoice_date, due_date, status FROM invoices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		var inv domain.Invoice
		var invoiceDate, dueDate sql.NullTime
		if err := rows.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerID, &inv.PolicyID, &inv.Amount, &invoiceDate, &dueDate, &inv.Status); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		inv.InvoiceDate = invoiceDate.Time
		inv.DueDate = dueDate.Time
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *ReferenceRepository) transactions(ctx context.Context, tx *sql.Tx) ([]domain.Transaction, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, transaction_id, COALESCE(invoice_id, 0), customer_id, amount, transaction_date, transaction_type, payment_method, status, reference_number FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var tr domain.Transaction
		var txDate sql.NullTime
		if err := rows.Scan(&tr.ID, &tr.TransactionID, &tr.InvoiceID, &tr.CustomerID, &tr.Amount, &txDate, &tr.TransactionType, &tr.PaymentMethod, &tr.Status, &tr.ReferenceNumber); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tr.TransactionDate = txDate.Time
		out = append(out, tr)
	}
	return out, rows.Err()
}

// Seed helpers used by the corpus loader. The inserts upsert on the
// natural keys so re-running the seed refreshes rows instead of
// duplicating the corpus. Customers without an email store NULL, which
// the unique index does not collide on.

func (r *ReferenceRepository) InsertCustomer(ctx context.Context, c domain.Customer) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO customers (name, email, phone) VALUES ($1,NULLIF($2,''),$3)
ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone
RETURNING id
`, c.Name, c.Email, c.Phone).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert customer: %w", err)
	}
	return id, nil
}

func (r *ReferenceRepository) InsertPolicy(ctx context.Context, p domain.Policy) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO policies (policy_number, customer_id, policy_type, status) VALUES ($1,$2,$3,$4)
ON CONFLICT (policy_number) DO UPDATE SET customer_id = EXCLUDED.customer_id, policy_type = EXCLUDED.policy_type, status = EXCLUDED.status
RETURNING id
`, p.PolicyNumber, p.CustomerID, p.PolicyType, p.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert policy: %w", err)
	}
	return id, nil
}

func (r *ReferenceRepository) InsertInvoice(ctx context.Context, inv domain.Invoice) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO invoices (invoice_number, customer_id, policy_id, amount, invoice_date, due_date, status)
VALUES ($1,$2,NULLIF($3,0),$4,$5,$6,$7)
ON CONFLICT (invoice_number) DO UPDATE SET customer_id = EXCLUDED.customer_id, policy_id = EXCLUDED.policy_id, amount = EXCLUDED.amount, invoice_date = EXCLUDED.invoice_date, due_date = EXCLUDED.due_date, status = EXCLUDED.status
RETURNING id
`, inv.InvoiceNumber, inv.CustomerID, inv.PolicyID, inv.Amount, nullableDate(inv.InvoiceDate), nullableDate(inv.DueDate), inv.Status).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert invoice: %w", err)
	}
	return id, nil
}

func (r *ReferenceRepository) InsertTransaction(ctx context.Context, tr domain.Transaction) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx, `
INSERT INTO transactions (transaction_id, invoice_id, customer_id, amount, transaction_date, transaction_type, payment_method, status, reference_number)
VALUES ($1,NULLIF($2,0),$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (transaction_id) DO UPDATE SET invoice_id = EXCLUDED.invoice_id, customer_id = EXCLUDED.customer_id, amount = EXCLUDED.amount, transaction_date = EXCLUDED.transaction_date, transaction_type = EXCLUDED.transaction_type, payment_method = EXCLUDED.payment_method, status = EXCLUDED.status, reference_number = EXCLUDED.reference_number
RETURNING id
`, tr.TransactionID, tr.InvoiceID, tr.CustomerID, tr.Amount, nullableDate(tr.TransactionDate), tr.TransactionType, tr.PaymentMethod, tr.Status, tr.ReferenceNumber).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

func nullableDate(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
