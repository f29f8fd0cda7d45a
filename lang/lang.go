// Package lang holds the per-language keyword spelling tables and the
// localized description templates. The data is pure configuration: the
// tokenizer and parser query it but never mutate it, so a single Registry
// can back any number of compilation pipelines.
package lang

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed languages.toml
var embeddedTables []byte

// Language is one configured surface language.
type Language struct {
	Code      string            `toml:"code"` // registry key, e.g. "tamil"
	Name      string            `toml:"name"` // display name in its own script
	Tag       string            `toml:"tag"`  // BCP-47-ish short tag
	Keywords  map[string]string `toml:"keywords"`
	Templates map[string]string `toml:"templates"`
}

type tableFile struct {
	Languages []Language `toml:"language"`
}

// Registry is the read-only set of configured languages. Construct it once
// at startup and inject it wherever a spelling table is needed.
type Registry struct {
	order []string
	byCode map[string]*Language
}

// Default returns a registry built from the embedded language tables.
// The embedded data is validated at build time by the package tests, so a
// decode failure here is a programming error.
func Default() *Registry {
	r, err := Load(embeddedTables)
	if err != nil {
		panic(fmt.Sprintf("lang: embedded tables are invalid: %v", err))
	}
	return r
}

// Load parses TOML language tables into a Registry.
func Load(data []byte) (*Registry, error) {
	var f tableFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("lang: parse tables: %w", err)
	}
	if len(f.Languages) == 0 {
		return nil, fmt.Errorf("lang: no languages defined")
	}

	r := &Registry{byCode: make(map[string]*Language, len(f.Languages))}
	for i := range f.Languages {
		l := &f.Languages[i]
		if l.Code == "" {
			return nil, fmt.Errorf("lang: language %d has no code", i)
		}
		if _, dup := r.byCode[l.Code]; dup {
			return nil, fmt.Errorf("lang: duplicate language %q", l.Code)
		}
		for _, canon := range requiredKeywords {
			if l.Keywords[canon] == "" {
				return nil, fmt.Errorf("lang: language %q is missing keyword %q", l.Code, canon)
			}
		}
		r.order = append(r.order, l.Code)
		r.byCode[l.Code] = l
	}
	return r, nil
}

// requiredKeywords is the minimum canonical keyword set every language must
// spell. Languages may define more (break, continue, class, import).
var requiredKeywords = []string{
	"if", "else", "while", "for", "function", "return",
	"var", "print", "true", "false", "and", "or", "not",
}

// Languages returns the configured language codes in declaration order.
func (r *Registry) Languages() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether the language is configured.
func (r *Registry) Has(code string) bool {
	_, ok := r.byCode[code]
	return ok
}

// KeywordsFor returns the canonical-keyword -> localized-spelling mapping
// for a language, or nil if the language is not configured.
func (r *Registry) KeywordsFor(code string) map[string]string {
	l, ok := r.byCode[code]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(l.Keywords))
	for k, v := range l.Keywords {
		out[k] = v
	}
	return out
}

// Reverse returns the localized-spelling -> canonical-keyword mapping.
// When two canonical keywords share a spelling (telugu spells both "else"
// and "or" as "leda") the earlier keyword in canonical order wins, so the
// mapping is deterministic.
func (r *Registry) Reverse(code string) map[string]string {
	l, ok := r.byCode[code]
	if !ok {
		return nil
	}
	out := make(map[string]string, len(l.Keywords))
	for _, canon := range canonicalOrder {
		spelling, ok := l.Keywords[canon]
		if !ok {
			continue
		}
		if _, taken := out[spelling]; !taken {
			out[spelling] = canon
		}
	}
	return out
}

// canonicalOrder fixes the priority used by Reverse for colliding spellings.
var canonicalOrder = []string{
	"if", "else", "while", "for", "function", "return", "var", "print",
	"input", "true", "false", "and", "or", "not",
	"break", "continue", "class", "import",
}

// DisplayName returns the language's native display name, or the code
// itself if the language is unknown.
func (r *Registry) DisplayName(code string) string {
	if l, ok := r.byCode[code]; ok && l.Name != "" {
		return l.Name
	}
	return code
}

// Template returns the description template for a concept key
// (if_statement, loop, function, variable, print), or "" if missing.
func (r *Registry) Template(code, key string) string {
	l, ok := r.byCode[code]
	if !ok {
		return ""
	}
	return l.Templates[key]
}

// IsKeyword reports whether word is a keyword spelling in the language.
func (r *Registry) IsKeyword(word, code string) bool {
	_, ok := r.Reverse(code)[word]
	return ok
}

// TranslateKeyword re-spells a keyword from one language to another.
// Words that are not keywords in the source language pass through unchanged.
func (r *Registry) TranslateKeyword(word, from, to string) string {
	canon, ok := r.Reverse(from)[word]
	if !ok {
		return word
	}
	target, ok := r.byCode[to]
	if !ok {
		return word
	}
	if spelling, ok := target.Keywords[canon]; ok {
		return spelling
	}
	return word
}
