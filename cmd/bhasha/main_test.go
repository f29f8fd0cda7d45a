package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSourceFromStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.bh")
	if err := os.WriteFile(path, []byte("print 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	old := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = old }()

	if got := readSource("-"); got != "print 1\n" {
		t.Fatalf("readSource(-) = %q", got)
	}
}

func TestReadSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.bh")
	if err := os.WriteFile(path, []byte("var x = 1\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := readSource(path); got != "var x = 1\n" {
		t.Fatalf("readSource(%s) = %q", path, got)
	}
}
