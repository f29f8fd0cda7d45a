// Package bhasha compiles and runs programs written in any of the
// configured surface languages. Source text is tokenized against the active
// language's spelling table, parsed, lowered to bytecode and executed on a
// budgeted stack machine; the bytecode is identical whichever language the
// program was spelled in.
package bhasha

import (
	"fmt"

	"github.com/bhasha-lang/bhasha/compiler"
	"github.com/bhasha-lang/bhasha/lang"
	"github.com/bhasha-lang/bhasha/pkg/bytecode"
)

// Result is the outcome of executing a source program. Output holds
// whatever the program printed before it finished or failed; on failure
// Error carries the reason and Success is false.
type Result struct {
	Success bool
	Output  []string
	Error   string

	// Program is the compiled form, when compilation got that far.
	Program *bytecode.Program
	// Steps is the number of instructions executed.
	Steps int
	// Diagnostics are characters the tokenizer skipped. They never fail
	// a run on their own.
	Diagnostics []compiler.Diagnostic
}

// Validation is the outcome of a syntax check. Warnings report characters
// the tokenizer skipped; they never make the source invalid on their own.
type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Engine ties the spelling tables, the front end, the code generator and
// the VM together behind one language-aware surface.
type Engine struct {
	// MaxSteps caps executed instructions per run. Zero means the
	// bytecode package default.
	MaxSteps int

	registry *lang.Registry
	language string
	analyzer *compiler.Analyzer
}

// New returns an engine over the embedded language tables, starting in
// english.
func New() *Engine {
	return NewWithRegistry(lang.Default())
}

// NewWithRegistry returns an engine over a custom language registry. The
// registry's first language is the starting language.
func NewWithRegistry(reg *lang.Registry) *Engine {
	e := &Engine{
		registry: reg,
		analyzer: compiler.NewAnalyzer(),
	}
	if codes := reg.Languages(); len(codes) > 0 {
		e.language = codes[0]
	}
	e.analyzer.SetLanguage(e.language)
	return e
}

// Language returns the active language code.
func (e *Engine) Language() string {
	return e.language
}

// SetLanguage switches the active surface language.
func (e *Engine) SetLanguage(code string) error {
	if !e.registry.Has(code) {
		return fmt.Errorf("unsupported language: %s", code)
	}
	e.language = code
	e.analyzer.SetLanguage(code)
	return nil
}

// Languages returns the configured language codes.
func (e *Engine) Languages() []string {
	return e.registry.Languages()
}

// DisplayName returns a language's native display name.
func (e *Engine) DisplayName(code string) string {
	return e.registry.DisplayName(code)
}

// Keywords returns the canonical-keyword to spelling mapping for the
// active language.
func (e *Engine) Keywords() map[string]string {
	return e.registry.KeywordsFor(e.language)
}

// parse runs the front end under the active spelling table.
func (e *Engine) parse(source string) (*compiler.Program, []compiler.Diagnostic, error) {
	tokens, diags := compiler.Tokenize(source, e.registry.Reverse(e.language))
	ast, err := compiler.Parse(tokens)
	if err != nil {
		return nil, diags, err
	}
	return ast, diags, nil
}

// Compile compiles source to a bytecode program without running it.
func (e *Engine) Compile(source string) (*bytecode.Program, error) {
	ast, _, err := e.parse(source)
	if err != nil {
		return nil, err
	}
	return bytecode.Compile(ast)
}

// Execute compiles and runs source. inputs supplies the lines consumed by
// input(); a program that reads past them gets empty strings. Execution
// failures preserve the output produced before the failure.
func (e *Engine) Execute(source string, inputs []string) Result {
	ast, diags, err := e.parse(source)
	if err != nil {
		return Result{Error: err.Error(), Diagnostics: diags}
	}
	prog, err := bytecode.Compile(ast)
	if err != nil {
		return Result{Error: err.Error(), Diagnostics: diags}
	}

	vm := bytecode.NewVM(prog)
	if e.MaxSteps > 0 {
		vm.MaxSteps = e.MaxSteps
	}
	vm.SetInput(inputs)

	runErr := vm.Run()
	res := Result{
		Success:     runErr == nil,
		Output:      vm.Output(),
		Program:     prog,
		Steps:       vm.Steps(),
		Diagnostics: diags,
	}
	if runErr != nil {
		res.Error = runErr.Error()
	}
	return res
}

// ValidateSyntax checks source against the grammar without generating
// code, so undeclared variables do not fail validation.
func (e *Engine) ValidateSyntax(source string) Validation {
	_, diags, err := e.parse(source)
	v := Validation{Valid: err == nil}
	if err != nil {
		v.Errors = []string{err.Error()}
	}
	for _, d := range diags {
		v.Warnings = append(v.Warnings,
			fmt.Sprintf("line %d: unrecognized character %q skipped", d.Line, d.Char))
	}
	return v
}

// Listing compiles source and returns the human-readable bytecode listing.
func (e *Engine) Listing(source string) (string, error) {
	prog, err := e.Compile(source)
	if err != nil {
		return "", err
	}
	return prog.Listing(), nil
}

// Analyze parses source and returns its structural summary. The
// description comes back in the active language.
func (e *Engine) Analyze(source string) (*compiler.Analysis, error) {
	ast, _, err := e.parse(source)
	if err != nil {
		return nil, err
	}
	return e.analyzer.Analyze(ast), nil
}

// Translate respells source from the active language into target. Only
// keywords change; identifiers, literals and layout stay put.
func (e *Engine) Translate(source, target string) (string, error) {
	if !e.registry.Has(target) {
		return "", fmt.Errorf("unsupported language: %s", target)
	}
	return compiler.Translate(source, e.registry.Reverse(e.language), e.registry.KeywordsFor(target)), nil
}

// Help returns a keyword reference for the active language: the spelling
// table, the language's construct explanations, and a small sample program
// respelled into it.
func (e *Engine) Help() string {
	sample := "var x = 10\n" +
		"if x > 5:\n" +
		"    print \"big\"\n" +
		"function greet(name):\n" +
		"    print \"hello \" + name\n"
	translated := compiler.Translate(sample,
		e.registry.Reverse("english"), e.registry.KeywordsFor(e.language))

	out := fmt.Sprintf("=== %s ===\n\nKeywords:\n", e.DisplayName(e.language))
	keywords := e.Keywords()
	for _, canonical := range []string{
		"var", "print", "input", "if", "else", "while", "for",
		"function", "return", "true", "false", "and", "or", "not",
	} {
		if spelling, ok := keywords[canonical]; ok {
			out += fmt.Sprintf("  %-8s -> %s\n", canonical, spelling)
		}
	}

	out += "\nConstructs:\n"
	for _, key := range []string{"variable", "print", "if_statement", "loop", "function"} {
		if tmpl := e.registry.Template(e.language, key); tmpl != "" {
			out += "  " + tmpl + "\n"
		}
	}
	return out + "\nExample:\n" + translated
}
