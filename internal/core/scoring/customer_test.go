package scoring

import (
	"testing"

	"github.com/cloudwisedk/docuprocess/internal/core/domain"
)

func TestCustomerMatchEmptyCorpus(t *testing.T) {
	if got := CustomerMatch("Dear John Smith", nil); got != 0.0 {
		t.Fatalf("expected 0.0 for empty corpus, got %v", got)
	}
}

func TestCustomerMatchSalutation(t *testing.T) {
	customers := []domain.Customer{{ID: 1, Name: "John Smith", Email: "john@example.com"}}
	got := CustomerMatch("Dear John Smith, your claim is attached.", customers)
	if got != 1.0 {
		t.Fatalf("expected perfect salutation match, got %v", got)
	}
}

func TestCustomerMatchEmail(t *testing.T) {
	customers := []domain.Customer{{ID: 1, Name: "Jane Doe", Email: "jane.doe@example.com"}}
	got := CustomerMatch("Please reply to Jane.Doe@Example.com", customers)
	if got != 1.0 {
		t.Fatalf("expected case-insensitive email match, got %v", got)
	}
}

func TestCustomerMatchPhoneDigitOnly(t *testing.T) {
	customers := []domain.Customer{{ID: 1, Name: "Jane Doe", Phone: "+1 (555) 123-4567"}}
	got := CustomerMatch("call 555-123-4567 for details", customers)
	if got < 0.9 {
		t.Fatalf("expected strong phone match, got %v", got)
	}
}

func TestCustomerMatchIgnoresShortDigitRuns(t *testing.T) {
	customers := []domain.Customer{{ID: 1, Name: "Jane Doe", Phone: "5551234567"}}
	got := CustomerMatch("room 555", customers)
	if got != 0.0 {
		t.Fatalf("expected short digit run to be skipped, got %v", got)
	}
}

func TestCustomerIndicatorsTitleAndLabel(t *testing.T) {
	names := customerIndicators("Mr. Hansen attended. Name: Lars Jensen")
	wantSubset := []string{"Mr. Hansen", "Lars Jensen"}
	for _, want := range wantSubset {
		found := false
		for _, n := range names {
			if n == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("indicators %v missing %q", names, want)
		}
	}
}
