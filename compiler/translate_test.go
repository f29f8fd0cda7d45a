package compiler

import (
	"testing"

	"github.com/bhasha-lang/bhasha/lang"
)

func TestTranslateEnglishToHindi(t *testing.T) {
	reg := lang.Default()
	src := "var x = 10\nif x > 5:\n    print \"big\"\n"
	got := Translate(src, reg.Reverse("english"), reg.KeywordsFor("hindi"))
	want := "badal x = 10\nagar x > 5:\n    dikhaao \"big\"\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranslatePreservesIdentifiersAndStrings(t *testing.T) {
	reg := lang.Default()
	// "iffy" contains a keyword spelling; the string literal holds one too.
	src := "var iffy = \"if while for\"\nprint iffy\n"
	got := Translate(src, reg.Reverse("english"), reg.KeywordsFor("hindi"))
	want := "badal iffy = \"if while for\"\ndikhaao iffy\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranslatePreservesLayout(t *testing.T) {
	reg := lang.Default()
	src := "while x:\n        x = x - 1\n"
	got := Translate(src, reg.Reverse("english"), reg.KeywordsFor("sanskrit"))
	want := "yavat x:\n        x = x - 1\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	reg := lang.Default()
	src := "function add(a, b):\n    return a + b\nprint add(1, 2)\n"
	tamil := Translate(src, reg.Reverse("english"), reg.KeywordsFor("tamil"))
	back := Translate(tamil, reg.Reverse("tamil"), reg.KeywordsFor("english"))
	if back != src {
		t.Fatalf("round trip changed the source:\n%s", back)
	}
}

func TestTranslateSameLanguageIsIdentity(t *testing.T) {
	reg := lang.Default()
	src := "if x and y or not z:\n    print true\n"
	got := Translate(src, reg.Reverse("english"), reg.KeywordsFor("english"))
	if got != src {
		t.Fatalf("identity translation changed the source:\n%s", got)
	}
}
