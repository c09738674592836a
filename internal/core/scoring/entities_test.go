package scoring

import (
	"reflect"
	"testing"
)

func TestExtractEntitiesEmptyOnPlainText(t *testing.T) {
	e := ExtractEntities("nothing of interest in this sentence")
	if len(e.Dates) != 0 || len(e.Amounts) != 0 || len(e.Emails) != 0 {
		t.Fatalf("expected empty entities, got %+v", e)
	}
}

func TestExtractEntitiesEmptyOnEmptyText(t *testing.T) {
	e := ExtractEntities("")
	if len(e.Dates) != 0 || len(e.Amounts) != 0 || len(e.Emails) != 0 {
		t.Fatalf("expected empty entities, got %+v", e)
	}
}

func TestExtractEntitiesDates(t *testing.T) {
	e := ExtractEntities("issued 3/14/2024 due 12/1/24, not 2024-03-14")
	want := []string{"3/14/2024", "12/1/24"}
	if !reflect.DeepEqual(e.Dates, want) {
		t.Fatalf("dates = %v, want %v", e.Dates, want)
	}
}

func TestExtractEntitiesAmountsStripSymbol(t *testing.T) {
	e := ExtractEntities("total $1,500.00 plus €25 and £ 3.50")
	want := []string{"1,500.00", "25", "3.50"}
	if !reflect.DeepEqual(e.Amounts, want) {
		t.Fatalf("amounts = %v, want %v", e.Amounts, want)
	}
}

func TestExtractEntitiesEmailsPreserveCase(t *testing.T) {
	e := ExtractEntities("contact John.Smith@Example.COM today")
	want := []string{"John.Smith@Example.COM"}
	if !reflect.DeepEqual(e.Emails, want) {
		t.Fatalf("emails = %v, want %v", e.Emails, want)
	}
}

func TestNormalizeTextRewritesDateSeparators(t *testing.T) {
	got := NormalizeText("billed  12-31-2024 \t and 1.2.24\n")
	want := "billed 12/31/2024 and 1/2/24"
	if got != want {
		t.Fatalf("NormalizeText() = %q, want %q", got, want)
	}
}
