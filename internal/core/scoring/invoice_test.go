package scoring

import (
	"math"
	"testing"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

func reconcile(t *testing.T, text string, invoices []domain.Invoice, txns []domain.Transaction) float64 {
	t.Helper()
	return InvoiceReconciliation(text, ExtractEntities(text), invoices, txns)
}

func TestInvoiceReconciliationExactAmount(t *testing.T) {
	invoices := []domain.Invoice{{ID: 1, InvoiceNumber: "INV-100200", Amount: 1500.00}}

	got := reconcile(t, "$1500.00", invoices, nil)
	// Exact amount scores 95 at 0.4 weight, plus 0.1 structure for having
	// an amount present.
	want := 0.95*0.4 + 0.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("reconciliation = %v, want %v", got, want)
	}
	if got < 0.38 {
		t.Fatalf("invoice component below 0.38: %v", got)
	}
}

func TestInvoiceReconciliationAmountTolerance(t *testing.T) {
	invoices := []domain.Invoice{{ID: 1, InvoiceNumber: "INV-100200", Amount: 1500.00}}

	got := reconcile(t, "$1460.00", invoices, nil)
	// Within 5%: 80 points at 0.4 weight plus amount-present structure.
	want := 0.80*0.4 + 0.1
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("reconciliation = %v, want %v", got, want)
	}
}

func TestInvoiceReconciliationNumberMatch(t *testing.T) {
	invoices := []domain.Invoice{{ID: 1, InvoiceNumber: "INV-100200", Amount: 42.0}}

	got := reconcile(t, "see INV-100200 attached", invoices, nil)
	// Candidate "INV-100200" matches the stored number exactly.
	want := 1.0 * 0.4
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("reconciliation = %v, want %v", got, want)
	}
}

func TestInvoiceReconciliationCrossValidationBonus(t *testing.T) {
	invoices := []domain.Invoice{{ID: 1, InvoiceNumber: "INV-100200", Amount: 1500.00}}
	txns := []domain.Transaction{{ID: 1, TransactionID: "TXN-555000", Amount: 1500.00}}

	text := "Received $1500.00 under TXN-555000"
	got := reconcile(t, text, invoices, txns)
	// Both components exceed 0.5, so the 0.1 cross-validation bonus lands.
	without := 0.95*0.4 + 0.90*0.3 + 0.1
	if got < without+0.1-1e-9 {
		t.Fatalf("expected cross-validation bonus, got %v (base %v)", got, without)
	}
}

func TestInvoiceReconciliationClampedToOne(t *testing.T) {
	invoices := []domain.Invoice{{ID: 1, InvoiceNumber: "INV-100200", Amount: 1500.00}}
	txns := []domain.Transaction{{ID: 1, TransactionID: "TXN-555000", Amount: 1500.00, ReferenceNumber: "REF-9"}}

	text := "Invoice INV-100200 payment receipt: total $1500.00, $12.00 tax, due 1/2/24, TXN-555000 reference REF-9"
	got := reconcile(t, text, invoices, txns)
	if got > 1.0 {
		t.Fatalf("score not clamped: %v", got)
	}
	if got != 1.0 {
		t.Fatalf("expected saturated score 1.0, got %v", got)
	}
}

func TestInvoiceReconciliationEmptyEverything(t *testing.T) {
	if got := reconcile(t, "", nil, nil); got != 0.0 {
		t.Fatalf("expected 0.0, got %v", got)
	}
}

func TestInvoiceReconciliationStructureOnly(t *testing.T) {
	// No corpus at all: only the structural score contributes.
	text := "invoice total due 3/14/2024: $10.00 and $20.00"
	got := reconcile(t, text, nil, nil)
	// amounts +0.1, multiple amounts +0.05, keyword density capped at
	// 0.15 (3/14 exceeds the cap), dates +0.05
	want := 0.1 + 0.05 + 0.15 + 0.05
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("structure score = %v, want %v", got, want)
	}
}
