package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCatalogBuiltins(t *testing.T) {
	c := NewCatalog()

	if got := c.T("tab.signals"); got != "Signals" {
		t.Errorf("T(tab.signals) = %q, want Signals", got)
	}
	if got := c.T("no.such.key"); got != "no.such.key" {
		t.Errorf("T of unknown key = %q, want the key itself", got)
	}
}

func TestLoadLocaleLayering(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"),
		[]byte("tab.signals: \"Trade Signals\"\ncustom.key: \"Custom\"\n"), 0644); err != nil {
		t.Fatalf("writing en catalog: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "de.yaml"),
		[]byte("tab.signals: \"Signale\"\n"), 0644); err != nil {
		t.Fatalf("writing de catalog: %v", err)
	}

	c, err := Load(dir, "de")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := c.Locale(); got != "de" {
		t.Errorf("Locale = %q, want de", got)
	}
	// Locale file wins over the en file.
	if got := c.T("tab.signals"); got != "Signale" {
		t.Errorf("T(tab.signals) = %q, want Signale", got)
	}
	// Keys absent in the locale file fall back to the en file layer.
	if got := c.T("custom.key"); got != "Custom" {
		t.Errorf("T(custom.key) = %q, want Custom", got)
	}
	// Keys absent in both files fall back to built-in English.
	if got := c.T("tab.portfolio"); got != "Portfolio" {
		t.Errorf("T(tab.portfolio) = %q, want Portfolio", got)
	}
}

func TestLoadMissingFilesOK(t *testing.T) {
	c, err := Load(t.TempDir(), "fr")
	if err != nil {
		t.Fatalf("Load with no catalog files: %v", err)
	}
	if got := c.T("tab.quotes"); got != "Quotes" {
		t.Errorf("T(tab.quotes) = %q, want built-in Quotes", got)
	}
}

func TestLoadMalformedCatalog(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), []byte("{not yaml"), 0644); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}
	if _, err := Load(dir, "en"); err == nil {
		t.Fatal("Load of malformed catalog should fail")
	}
}
