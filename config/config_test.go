package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	content := "FIN_BACKEND=sqlite\nFIN_CURRENCY=usd\nFIN_ADDR=:9090\n"
	if err := os.WriteFile(env, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	// godotenv does not override variables already set.
	for _, k := range []string{EnvStore, EnvBackend, EnvCurrency, EnvCategories, EnvAddr, EnvVerbose, EnvTestingNow} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(env)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	want := &Config{
		Store:    filepath.Join(".fin", "ledger.sqlite"),
		Backend:  BackendSQLite,
		Currency: "USD",
		Addr:     ":9090",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvBackend, "postgres")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err == nil || !strings.Contains(err.Error(), ".env") {
		t.Fatalf("Load(missing file) error = %v", err)
	}

	cfg := &Config{Backend: "postgres", Currency: "INR"}
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() accepted backend postgres")
	}
	cfg = &Config{Backend: BackendBolt, Currency: "RUPEE"}
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate() accepted currency RUPEE")
	}
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := `categories:
  - name: Grocery
    color: "#000000"
  - name: Pets
    color: "#123456"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cats, err := LoadCategories(path)
	if err != nil {
		t.Fatalf("LoadCategories() unexpected error: %v", err)
	}
	if got := cats.Color("Grocery"); got != "#000000" {
		t.Errorf("Color(Grocery) = %q, want #000000", got)
	}
	if got := cats.Color("Pets"); got != "#123456" {
		t.Errorf("Color(Pets) = %q, want #123456", got)
	}
	if got := cats.Color("Yachts"); got != "#C9CBCF" {
		t.Errorf("Color(Yachts) = %q, want the Other colour", got)
	}
	if n := len(cats); n != len(DefaultCategories)+1 {
		t.Errorf("got %d categories, want %d", n, len(DefaultCategories)+1)
	}
	// defaults are left untouched
	if DefaultCategories[1].Color != "#34D399" {
		t.Errorf("LoadCategories modified the defaults")
	}

	defaults, err := LoadCategories("")
	if err != nil {
		t.Fatal(err)
	}
	if got := defaults.Names()[0]; got != "Food & Drink" {
		t.Errorf("first default category = %q", got)
	}

	if err := os.WriteFile(path, []byte("categories: [{color: red}]"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCategories(path); err == nil {
		t.Errorf("LoadCategories() accepted a category without a name")
	}
}
