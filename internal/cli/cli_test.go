package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"warehouse-cost-service/internal/domain"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// --- parseOrderArgs ---

func TestParseOrderArgs(t *testing.T) {
	order, err := parseOrderArgs([]string{"A=1", "E=2", "A=3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := order.Key(), "A=4,E=2"; got != want {
		t.Fatalf("order = %q, want %q", got, want)
	}

	for _, bad := range []string{"A", "=1", "A=0", "A=-2", "A=1.5", "A=x"} {
		if _, err := parseOrderArgs([]string{bad}); err == nil {
			t.Errorf("parseOrderArgs(%q) expected error", bad)
		}
	}
}

// --- quote ---

func TestQuoteCommand(t *testing.T) {
	out, err := runCLI(t, "quote", "A=1", "E=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "total_cost: 160") {
		t.Fatalf("expected total 160, got %q", out)
	}
}

func TestQuoteCommandRateOverrides(t *testing.T) {
	t.Setenv("RATE_REPOSITION", "20")

	// C1 3 x 10, reposition 2.5 x 20, C2 2.5 x 42.
	out, err := runCLI(t, "quote", "A=1", "E=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "total_cost: 185") {
		t.Fatalf("expected total 185, got %q", out)
	}

	t.Setenv("RATE_BASE", "cheap")
	if _, err := runCLI(t, "quote", "A=1"); err == nil {
		t.Fatalf("expected error for invalid RATE_BASE")
	}
}

func TestQuoteCommandBreakdown(t *testing.T) {
	out, err := runCLI(t, "quote", "--breakdown", "A=1", "E=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "reposition") {
		t.Fatalf("expected a reposition leg, got %q", out)
	}
}

func TestQuoteCommandJSON(t *testing.T) {
	out, err := runCLI(t, "quote", "--json", "E=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var q domain.Quote
	if err := json.Unmarshal([]byte(out), &q); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if q.TotalCost != 105 {
		t.Fatalf("total = %v, want 105", q.TotalCost)
	}
}

func TestQuoteCommandUnsourced(t *testing.T) {
	if _, err := runCLI(t, "quote", "Z=1"); err == nil {
		t.Fatalf("expected error for unstocked item")
	}

	out, err := runCLI(t, "quote", "--allow-unsourced", "A=1", "Z=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "unsourced: Z") || !strings.Contains(out, "total_cost: 30") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestQuoteCommandCustomCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `
hub: HUB
items: {X: 6}
centers:
  - id: W1
    distance_to_hub: 4
    stock: {X: 10}
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	out, err := runCLI(t, "quote", "--catalog", path, "X=1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// weight 6 -> rate 18, distance 4.
	if !strings.Contains(out, "total_cost: 72") {
		t.Fatalf("expected total 72, got %q", out)
	}
}

// --- catalog validate ---

func TestCatalogValidateCommand(t *testing.T) {
	out, err := runCLI(t, "catalog", "validate", filepath.Join("..", "..", "data", "seeds", "catalog.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "OK hub=L1 centers=3 items=9") {
		t.Fatalf("unexpected output %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"hub": "L1", "items": {"A": 1}, "centers": []}`), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if _, err := runCLI(t, "catalog", "validate", bad); err == nil {
		t.Fatalf("expected validation error")
	}
}

// --- catalog export ---

func TestCatalogExportRoundTrips(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := runCLI(t, "catalog", "export", "--format", format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			path := filepath.Join(t.TempDir(), "catalog."+format)
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				t.Fatalf("write catalog: %v", err)
			}

			if _, err := runCLI(t, "catalog", "validate", path); err != nil {
				t.Fatalf("exported %s catalog does not validate: %v", format, err)
			}
		})
	}

	if _, err := runCLI(t, "catalog", "export", "--format", "toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
