package goldspot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func obs(date string, price string, source string) Observation {
	return Observation{Date: MustParse(date), Price: decimal.RequireFromString(price), Currency: USD, Source: source}
}

func TestReconcilePriority(t *testing.T) {
	// Three sources share 2020-01-01; the highest-priority (last) one wins.
	a := Series{obs("2020-01-01", "100", "a")}
	b := Series{obs("2020-01-01", "200", "b")}
	c := Series{obs("2020-01-01", "300", "c")}

	merged, used, full := Reconcile(a, b, c)

	if len(merged) != 1 {
		t.Fatalf("Reconcile() kept %d rows, want 1", len(merged))
	}
	if got := merged[0].Source; got != "c" {
		t.Errorf("winner is %q, want %q", got, "c")
	}
	if got := merged[0].Price.String(); got != "300" {
		t.Errorf("winner price is %s, want 300", got)
	}

	// Full coverage remembers every contributor, used only the winner.
	for _, source := range []string{"a", "b", "c"} {
		if full[source].Count != 1 {
			t.Errorf("full[%q].Count = %d, want 1", source, full[source].Count)
		}
	}
	if _, ok := used["a"]; ok {
		t.Errorf("used contains displaced source %q", "a")
	}
	if used["c"].Count != 1 {
		t.Errorf("used[%q].Count = %d, want 1", "c", used["c"].Count)
	}
}

func TestReconcileGranularityHandover(t *testing.T) {
	// An annual source covering 1960, a monthly one covering part of it:
	// the monthly rows displace the single annual row only where they overlap.
	annual := Series{
		obs("1959-01-01", "35.10", "annual"),
		obs("1960-01-01", "35.27", "annual"),
	}
	monthly := Series{
		obs("1960-01-01", "35.50", "monthly"),
		obs("1960-02-01", "35.60", "monthly"),
	}

	merged, used, full := Reconcile(annual, monthly)

	want := []struct {
		date   string
		price  string
		source string
	}{
		{"1959-01-01", "35.10", "annual"},
		{"1960-01-01", "35.50", "monthly"},
		{"1960-02-01", "35.60", "monthly"},
	}
	if len(merged) != len(want) {
		t.Fatalf("Reconcile() kept %d rows, want %d", len(merged), len(want))
	}
	for i, w := range want {
		if merged[i].Date.String() != w.date || merged[i].Price.String() != w.price || merged[i].Source != w.source {
			t.Errorf("row %d = %s %s %q, want %s %s %q",
				i, merged[i].Date, merged[i].Price, merged[i].Source, w.date, w.price, w.source)
		}
	}

	if used["annual"].Count != 1 || full["annual"].Count != 2 {
		t.Errorf("annual used/full = %d/%d, want 1/2", used["annual"].Count, full["annual"].Count)
	}
	// full range still spans both years even though 1960 was displaced
	if full["annual"].End != MustParse("1960-01-01") {
		t.Errorf("full[annual].End = %s, want 1960-01-01", full["annual"].End)
	}
}

func TestReconcileSorts(t *testing.T) {
	s := Series{
		obs("2020-03-01", "3", "x"),
		obs("2020-01-01", "1", "x"),
		obs("2020-02-01", "2", "x"),
	}
	merged, _, _ := Reconcile(s)
	for i := 1; i < len(merged); i++ {
		if !merged[i-1].Date.Before(merged[i].Date) {
			t.Fatalf("merged series not sorted at %d: %s then %s", i, merged[i-1].Date, merged[i].Date)
		}
	}
}

func TestReconcileSameDateWithinSource(t *testing.T) {
	// Duplicate dates within one series follow the same last-wins rule.
	s := Series{
		obs("2020-01-01", "1", "x"),
		obs("2020-01-01", "2", "x"),
	}
	merged, _, _ := Reconcile(s)
	if len(merged) != 1 || merged[0].Price.String() != "2" {
		t.Fatalf("merged = %v, want single row with price 2", merged)
	}
}

func TestReconcileEmpty(t *testing.T) {
	merged, used, full := Reconcile()
	if len(merged) != 0 || len(used) != 0 || len(full) != 0 {
		t.Errorf("Reconcile() of nothing = %d rows, %d used, %d full, want all empty",
			len(merged), len(used), len(full))
	}

	merged, used, full = Reconcile(Series{}, Series{})
	if len(merged) != 0 || len(used) != 0 || len(full) != 0 {
		t.Errorf("Reconcile() of empty series = %d rows, %d used, %d full, want all empty",
			len(merged), len(used), len(full))
	}
}

func TestReconcileUntaggedRows(t *testing.T) {
	// Fallback rows have no source: they merge but are invisible in coverage.
	fallback := Series{
		{Date: NewDate(2020, time.January, 1), Price: decimal.RequireFromString("100")},
	}
	live := Series{obs("2020-01-02", "101", "live")}

	merged, used, full := Reconcile(fallback, live)
	if len(merged) != 2 {
		t.Fatalf("Reconcile() kept %d rows, want 2", len(merged))
	}
	if len(full) != 1 || len(used) != 1 {
		t.Errorf("coverage counts untagged rows: used=%v full=%v", used, full)
	}
}
