// Package corpusload seeds the reference tables from the workbook the
// business side maintains.
package corpusload

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

// SeedStore is the insert surface of the reference repository.
type SeedStore interface {
	InsertCustomer(ctx context.Context, c domain.Customer) (int64, error)
	InsertPolicy(ctx context.Context, p domain.Policy) (int64, error)
	InsertInvoice(ctx context.Context, inv domain.Invoice) (int64, error)
	InsertTransaction(ctx context.Context, tr domain.Transaction) (int64, error)
}

type Loader struct {
	store  SeedStore
	logger *slog.Logger
}

func NewLoader(store SeedStore, logger *slog.Logger) *Loader {
	return &Loader{store: store, logger: logger}
}

type Summary struct {
	Customers    int
	Policies     int
	Invoices     int
	Transactions int
}

// LoadWorkbook reads the four reference sheets and inserts every row.
// Workbook row ids are remapped to the generated database ids so foreign
// keys stay consistent.
func (l *Loader) LoadWorkbook(ctx context.Context, path string) (Summary, error) {
	var summary Summary

	book, err := excelize.OpenFile(path)
	if err != nil {
		return summary, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	customerIDs, err := l.loadCustomers(ctx, book, &summary)
	if err != nil {
		return summary, err
	}
	policyIDs, err := l.loadPolicies(ctx, book, customerIDs, &summary)
	if err != nil {
		return summary, err
	}
	invoiceIDs, err := l.loadInvoices(ctx, book, customerIDs, policyIDs, &summary)
	if err != nil {
		return summary, err
	}
	if err := l.loadTransactions(ctx, book, customerIDs, invoiceIDs, &summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (l *Loader) loadCustomers(ctx context.Context, book *excelize.File, summary *Summary) (map[int64]int64, error) {
	rows, err := sheetRows(book, "Customers")
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]int64)
	for i, row := range rows {
		customer := domain.Customer{
			Name:  cell(row, 1),
			Email: cell(row, 2),
			Phone: cell(row, 3),
		}
		if customer.Name == "" {
			l.logger.Warn("skip_customer_row", "row", i+2)
			continue
		}
		id, err := l.store.InsertCustomer(ctx, customer)
		if err != nil {
			return nil, fmt.Errorf("customers row %d: %w", i+2, err)
		}
		ids[cellInt(row, 0)] = id
		summary.Customers++
	}
	return ids, nil
}

func (l *Loader) loadPolicies(ctx context.Context, book *excelize.File, customerIDs map[int64]int64, summary *Summary) (map[int64]int64, error) {
	rows, err := sheetRows(book, "Policies")
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]int64)
	for i, row := range rows {
		policy := domain.Policy{
			PolicyNumber: cell(row, 1),
			CustomerID:   customerIDs[cellInt(row, 2)],
			PolicyType:   cell(row, 3),
			Status:       cell(row, 4),
		}
		if policy.PolicyNumber == "" || policy.CustomerID == 0 {
			l.logger.Warn("skip_policy_row", "row", i+2)
			continue
		}
		id, err := l.store.InsertPolicy(ctx, policy)
		if err != nil {
			return nil, fmt.Errorf("policies row %d: %w", i+2, err)
		}
		ids[cellInt(row, 0)] = id
		summary.Policies++
	}
	return ids, nil
}

func (l *Loader) loadInvoices(ctx context.Context, book *excelize.File, customerIDs, policyIDs map[int64]int64, summary *Summary) (map[int64]int64, error) {
	rows, err := sheetRows(book, "Invoices")
	if err != nil {
		return nil, err
	}
	ids := make(map[int64]int64)
	for i, row := range rows {
		invoice := domain.Invoice{
			InvoiceNumber: cell(row, 1),
			CustomerID:    customerIDs[cellInt(row, 2)],
			PolicyID:      policyIDs[cellInt(row, 3)],
			Amount:        cellFloat(row, 4),
			InvoiceDate:   cellDate(row, 5),
			DueDate:       cellDate(row, 6),
			Status:        cell(row, 7),
		}
		if invoice.InvoiceNumber == "" || invoice.CustomerID == 0 {
			l.logger.Warn("skip_invoice_row", "row", i+2)
			continue
		}
		id, err := l.store.InsertInvoice(ctx, invoice)
		if err != nil {
			return nil, fmt.Errorf("invoices row %d: %w", i+2, err)
		}
		ids[cellInt(row, 0)] = id
		summary.Invoices++
	}
	return ids, nil
}

func (l *Loader) loadTransactions(ctx context.Context, book *excelize.File, customerIDs, invoiceIDs map[int64]int64, summary *Summary) error {
	rows, err := sheetRows(book, "Transactions")
	if err != nil {
		return err
	}
	for i, row := range rows {
		transaction := domain.Transaction{
			TransactionID:   cell(row, 1),
			InvoiceID:       invoiceIDs[cellInt(row, 2)],
			CustomerID:      customerIDs[cellInt(row, 3)],
			Amount:          cellFloat(row, 4),
			TransactionDate: cellDate(row, 5),
			TransactionType: cell(row, 6),
			PaymentMethod:   cell(row, 7),
			Status:          cell(row, 8),
			ReferenceNumber: cell(row, 9),
		}
		if transaction.TransactionID == "" || transaction.CustomerID == 0 {
			l.logger.Warn("skip_transaction_row", "row", i+2)
			continue
		}
		if _, err := l.store.InsertTransaction(ctx, transaction); err != nil {
			return fmt.Errorf("transactions row %d: %w", i+2, err)
		}
		summary.Transactions++
	}
	return nil
}

// sheetRows returns the data rows of a sheet, header excluded.
func sheetRows(book *excelize.File, sheet string) ([][]string, error) {
	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellInt(row []string, idx int) int64 {
	v, err := strconv.ParseInt(cell(row, idx), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func cellFloat(row []string, idx int) float64 {
	raw := strings.ReplaceAll(cell(row, idx), ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}

func cellDate(row []string, idx int) time.Time {
	raw := cell(row, idx)
	for _, layout := range []string{"2006-01-02", "01-02-06", "1/2/2006", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
