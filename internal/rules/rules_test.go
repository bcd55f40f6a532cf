package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/supportdesk/ticket-triage/internal/domain"
)

func TestDefault_MatchOrder(t *testing.T) {
	t.Parallel()

	r := Default()
	tests := []struct {
		text string
		want domain.Category
	}{
		{"App shows an ERROR on startup", domain.CategoryTechnical},
		{"I was charged twice and the app crashed", domain.CategoryTechnical},
		{"Please refund my order", domain.CategoryBilling},
		{"Cannot login to my profile", domain.CategoryAccount},
		{"Love the new feature", domain.CategoryProduct},
		{"Where is my package?", domain.CategoryShipping},
		{"Just saying hello", domain.CategoryGeneral},
		{"", domain.CategoryGeneral},
	}
	for _, tt := range tests {
		if got := r.Match(tt.text); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDefault_CategoryOrder(t *testing.T) {
	t.Parallel()

	want := []domain.Category{
		domain.CategoryTechnical,
		domain.CategoryBilling,
		domain.CategoryAccount,
		domain.CategoryProduct,
		domain.CategoryShipping,
	}
	got := Default().Categories()
	if len(got) != len(want) {
		t.Fatalf("len(Categories) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Category != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, got[i].Category, want[i])
		}
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	t.Parallel()

	r := Default()
	cats := r.Categories()
	cats[0].Keywords[0] = "zzz"
	cats[0].Category = domain.CategoryShipping

	if r.Match("an error happened") != domain.CategoryTechnical {
		t.Fatal("mutating Categories() result changed the rule set")
	}
}

func TestTemplates_FallbackToGeneral(t *testing.T) {
	t.Parallel()

	r := Default()
	got := r.Templates(domain.Category("Unknown"))
	want := r.Templates(domain.CategoryGeneral)
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("Templates(Unknown) = %v, want General pool %v", got, want)
	}
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	general := map[domain.Category][]string{domain.CategoryGeneral: {"hi"}}
	tests := []struct {
		name    string
		cats    []CategoryRule
		tpls    map[domain.Category][]string
		wantErr string
	}{
		{"unknown category", []CategoryRule{{Category: "Misc", Keywords: []string{"x"}}}, general, "unknown category"},
		{"general keywords", []CategoryRule{{Category: domain.CategoryGeneral, Keywords: []string{"x"}}}, general, "fallback"},
		{"duplicate", []CategoryRule{
			{Category: domain.CategoryBilling, Keywords: []string{"x"}},
			{Category: domain.CategoryBilling, Keywords: []string{"y"}},
		}, general, "listed twice"},
		{"empty keywords", []CategoryRule{{Category: domain.CategoryBilling, Keywords: []string{" "}}}, general, "no keywords"},
		{"no general templates", []CategoryRule{{Category: domain.CategoryBilling, Keywords: []string{"x"}}}, map[domain.Category][]string{}, "General templates"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.cats, tt.tpls)
			if err == nil {
				t.Fatal("New() returned nil error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	content := `
categories:
  - name: Shipping
    keywords: [Courier, parcel]
  - name: Billing
    keywords: [invoice]
templates:
  Shipping:
    - "We are chasing the courier."
  General:
    - "Thanks for reaching out."
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := r.Match("The COURIER lost my invoice"); got != domain.CategoryShipping {
		t.Errorf("Match = %q, want Shipping (listed first)", got)
	}
	if got := r.Templates(domain.CategoryBilling); len(got) != 1 || got[0] != "Thanks for reaching out." {
		t.Errorf("Templates(Billing) = %v, want General fallback", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file returned nil error")
	}
}
