// bhasha - run, inspect and translate multilingual programs
//
// Usage:
//   bhasha program.bh                     # compile and run
//   bhasha -lang hindi program.bh         # source is spelled in hindi
//   bhasha -input 5 -input 7 program.bh   # provide input() lines
//   bhasha -disasm program.bh             # print the bytecode listing
//   bhasha -emit program.bhc program.bh   # compile to a bytecode file
//   bhasha program.bhc                    # run a compiled file
//   bhasha -translate tamil program.bh    # respell keywords into tamil
//   bhasha -history                       # show recent runs
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/bhasha-lang/bhasha"
	"github.com/bhasha-lang/bhasha/pkg/bytecode"
)

// stringList collects repeated flag values.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var inputs stringList
	language := flag.String("lang", "english", "Surface language of the source")
	flag.Var(&inputs, "input", "Line consumed by input(); repeatable")
	maxSteps := flag.Int("steps", 0, "Instruction budget (0 = default)")
	disasm := flag.Bool("disasm", false, "Print the bytecode listing instead of running")
	validate := flag.Bool("validate", false, "Check syntax only")
	analyze := flag.Bool("analyze", false, "Print the code analysis")
	translate := flag.String("translate", "", "Respell keywords into the given language")
	emit := flag.String("emit", "", "Compile to a bytecode file instead of running")
	listLangs := flag.Bool("langs", false, "List supported languages")
	showHelp := flag.Bool("keywords", false, "Show the keyword reference for -lang")
	showHistory := flag.Bool("history", false, "Show recent runs")
	historyPath := flag.String("history-db", defaultHistoryPath(), "Run history database")
	noHistory := flag.Bool("no-history", false, "Do not record this run")
	verbose := flag.Bool("v", false, "Verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: bhasha [options] <file.bh | file.bhc | ->\n\n")
		fmt.Fprintf(os.Stderr, "Runs a program written in any supported surface language.\n")
		fmt.Fprintf(os.Stderr, "'-' reads the source from stdin.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
	log := commonlog.GetLogger("bhasha.cli")

	engine := bhasha.New()
	engine.MaxSteps = *maxSteps
	if err := engine.SetLanguage(*language); err != nil {
		fail("%v", err)
	}

	switch {
	case *listLangs:
		for _, code := range engine.Languages() {
			fmt.Printf("%-10s %s\n", code, engine.DisplayName(code))
		}
		return
	case *showHelp:
		fmt.Print(engine.Help())
		return
	case *showHistory:
		showRecentRuns(*historyPath)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)
	source := readSource(path)

	switch {
	case *validate:
		v := engine.ValidateSyntax(source)
		for _, w := range v.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if !v.Valid {
			fail("%s", strings.Join(v.Errors, "\n"))
		}
		fmt.Println("syntax ok")
		return

	case *analyze:
		a, err := engine.Analyze(source)
		if err != nil {
			fail("%v", err)
		}
		fmt.Printf("statements:  %d\n", a.TotalStatements)
		fmt.Printf("variables:   %s\n", strings.Join(a.Variables, ", "))
		fmt.Printf("functions:   %s\n", strings.Join(a.Functions, ", "))
		fmt.Printf("complexity:  %d\n", a.ComplexityScore)
		fmt.Printf("\n%s\n", a.Description)
		return

	case *translate != "":
		out, err := engine.Translate(source, *translate)
		if err != nil {
			fail("%v", err)
		}
		fmt.Print(out)
		return

	case *disasm:
		listing, err := listingFor(engine, path, source)
		if err != nil {
			fail("%v", err)
		}
		fmt.Print(listing)
		return

	case *emit != "":
		prog, err := engine.Compile(source)
		if err != nil {
			fail("%v", err)
		}
		data, err := bytecode.Marshal(prog)
		if err != nil {
			fail("%v", err)
		}
		if err := os.WriteFile(*emit, data, 0o644); err != nil {
			fail("%v", err)
		}
		log.Infof("wrote %d bytes to %s", len(data), *emit)
		return
	}

	res := runProgram(engine, path, source, inputs)
	for _, line := range res.Output {
		fmt.Println(line)
	}

	if !*noHistory {
		if err := recordRun(*historyPath, *language, path, res); err != nil {
			// History failures never fail the run.
			log.Warningf("history not recorded: %v", err)
		}
	}

	if !res.Success {
		fail("%s", res.Error)
	}
}

// runProgram executes either source text or a compiled .bhc file.
func runProgram(engine *bhasha.Engine, path, source string, inputs []string) bhasha.Result {
	if !strings.HasSuffix(path, ".bhc") {
		return engine.Execute(source, inputs)
	}

	prog, err := bytecode.Unmarshal([]byte(source))
	if err != nil {
		return bhasha.Result{Error: err.Error()}
	}
	vm := bytecode.NewVM(prog)
	if engine.MaxSteps > 0 {
		vm.MaxSteps = engine.MaxSteps
	}
	vm.SetInput(inputs)
	runErr := vm.Run()
	res := bhasha.Result{
		Success: runErr == nil,
		Output:  vm.Output(),
		Program: prog,
		Steps:   vm.Steps(),
	}
	if runErr != nil {
		res.Error = runErr.Error()
	}
	return res
}

func listingFor(engine *bhasha.Engine, path, source string) (string, error) {
	if strings.HasSuffix(path, ".bhc") {
		prog, err := bytecode.Unmarshal([]byte(source))
		if err != nil {
			return "", err
		}
		return prog.Listing(), nil
	}
	return engine.Listing(source)
}

func readSource(path string) string {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fail("read stdin: %v", err)
		}
		return string(data)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fail("%v", err)
	}
	return string(data)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "bhasha: "+format+"\n", args...)
	os.Exit(1)
}
