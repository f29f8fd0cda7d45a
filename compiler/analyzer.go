package compiler

import (
	"fmt"
	"strings"
)

// Analysis is a structural summary of a parsed program.
type Analysis struct {
	TotalStatements   int      `json:"total_statements"`
	Variables         []string `json:"variables"`
	Functions         []string `json:"functions"`
	ControlStructures []string `json:"control_structures"`
	ComplexityScore   int      `json:"complexity_score"`
	Description       string   `json:"description"`
}

// Analyzer walks an AST and scores it. The description is rendered in the
// configured language; unknown codes fall back to english.
type Analyzer struct {
	language string
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{language: "english"}
}

// SetLanguage selects the description language.
func (a *Analyzer) SetLanguage(code string) {
	a.language = code
}

// Analyze summarizes a program. Variables and functions are reported in
// first-mention order.
func (a *Analyzer) Analyze(prog *Program) *Analysis {
	w := &analysisWalker{
		seenVars:  map[string]bool{},
		seenFuncs: map[string]bool{},
	}
	w.analysis.TotalStatements = len(prog.Statements)
	for _, stmt := range prog.Statements {
		w.walkStmt(stmt)
	}
	w.analysis.Description = describe(a.language, &w.analysis)
	return &w.analysis
}

type analysisWalker struct {
	analysis  Analysis
	seenVars  map[string]bool
	seenFuncs map[string]bool
}

func (w *analysisWalker) addVar(name string) {
	if !w.seenVars[name] {
		w.seenVars[name] = true
		w.analysis.Variables = append(w.analysis.Variables, name)
	}
}

func (w *analysisWalker) addFunc(name string) {
	if !w.seenFuncs[name] {
		w.seenFuncs[name] = true
		w.analysis.Functions = append(w.analysis.Functions, name)
	}
}

func (w *analysisWalker) walkStmts(stmts []Stmt) {
	for _, stmt := range stmts {
		w.walkStmt(stmt)
	}
}

func (w *analysisWalker) walkStmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *Assignment:
		w.addVar(s.Name)
		w.walkExpr(s.Value)
	case *If:
		w.analysis.ControlStructures = append(w.analysis.ControlStructures, "if")
		w.analysis.ComplexityScore += 2
		w.walkExpr(s.Cond)
		w.walkStmts(s.Then)
		w.walkStmts(s.Else)
	case *While:
		w.analysis.ControlStructures = append(w.analysis.ControlStructures, "while")
		w.analysis.ComplexityScore += 3
		w.walkExpr(s.Cond)
		w.walkStmts(s.Body)
	case *For:
		w.analysis.ControlStructures = append(w.analysis.ControlStructures, "for")
		w.analysis.ComplexityScore += 3
		w.addVar(s.Var)
		w.walkExpr(s.Start)
		w.walkExpr(s.End)
		w.walkStmts(s.Body)
	case *Function:
		w.addFunc(s.Name)
		w.analysis.ComplexityScore += 5
		for _, param := range s.Params {
			w.addVar(param)
		}
		w.walkStmts(s.Body)
	case *Return:
		if s.Value != nil {
			w.walkExpr(s.Value)
		}
	case *Print:
		w.walkExpr(s.Value)
	case *ExprStmt:
		w.walkExpr(s.Value)
	}
}

func (w *analysisWalker) walkExpr(expr Expr) {
	switch e := expr.(type) {
	case *BinaryOp:
		w.analysis.ComplexityScore++
		w.walkExpr(e.Left)
		w.walkExpr(e.Right)
	case *UnaryOp:
		w.analysis.ComplexityScore++
		w.walkExpr(e.Operand)
	case *Call:
		w.analysis.ComplexityScore += 2
		for _, arg := range e.Args {
			w.walkExpr(arg)
		}
	case *Identifier:
		w.addVar(e.Name)
	}
}

// descriptionPhrases holds the sentence templates for one language.
// statements/manyVars/manyFuncs take a count and a list, oneVar/oneFunc a
// list only, controls a list only.
type descriptionPhrases struct {
	statements string
	oneVar     string
	manyVars   string
	oneFunc    string
	manyFuncs  string
	controls   string
	low        string
	medium     string
	high       string
}

var phrasesByLanguage = map[string]descriptionPhrases{
	"english": {
		statements: "This program contains %d statements.",
		oneVar:     "It uses 1 variable: %s.",
		manyVars:   "It uses %d variables: %s.",
		oneFunc:    "It defines 1 function: %s.",
		manyFuncs:  "It defines %d functions: %s.",
		controls:   "The program uses control structures: %s.",
		low:        "This is a simple program with low complexity.",
		medium:     "This is a moderately complex program.",
		high:       "This is a complex program with advanced logic.",
	},
	"tamil": {
		statements: "இந்த நிரல் %d அறிக்கைகளை கொண்டுள்ளது.",
		oneVar:     "இது 1 மாறியை பயன்படுத்துகிறது: %s.",
		manyVars:   "இது %d மாறிகளை பயன்படுத்துகிறது: %s.",
		oneFunc:    "இது 1 செயல்பாட்டை வரையறுக்கிறது: %s.",
		manyFuncs:  "இது %d செயல்பாடுகளை வரையறுக்கிறது: %s.",
		controls:   "நிரல் கட்டுப்பாட்டு கட்டமைப்புகளை பயன்படுத்துகிறது: %s.",
		low:        "இது குறைந்த சிக்கலான எளிய நிரல்.",
		medium:     "இது மிதமான சிக்கலான நிரல்.",
		high:       "இது மேம்பட்ட தர்க்கத்துடன் கூடிய சிக்கலான நிரல்.",
	},
	"malayalam": {
		statements: "ഈ പ്രോഗ്രാമിൽ %d പ്രസ്താവനകൾ അടങ്ങിയിരിക്കുന്നു.",
		oneVar:     "ഇത് 1 വേരിയബിൾ ഉപയോഗിക്കുന്നു: %s.",
		manyVars:   "ഇത് %d വേരിയബിളുകൾ ഉപയോഗിക്കുന്നു: %s.",
		oneFunc:    "ഇത് 1 ഫംഗ്ഷൻ നിർവചിക്കുന്നു: %s.",
		manyFuncs:  "ഇത് %d ഫംഗ്ഷനുകൾ നിർവചിക്കുന്നു: %s.",
		controls:   "പ്രോഗ്രാം നിയന്ത്രണ ഘടനകൾ ഉപയോഗിക്കുന്നു: %s.",
		low:        "ഇത് കുറഞ്ഞ സങ്കീർണ്ണതയുള്ള ലളിതമായ പ്രോഗ്രാമാണ്.",
		medium:     "ഇത് മിതമായ സങ്കീർണ്ണതയുള്ള പ്രോഗ്രാമാണ്.",
		high:       "ഇത് വിപുലമായ ലോജിക്കുള്ള സങ്കീർണ്ണമായ പ്രോഗ്രാമാണ്.",
	},
	"telugu": {
		statements: "ఈ ప్రోగ్రామ్‌లో %d ప్రకటనలు ఉన్నాయి.",
		oneVar:     "ఇది 1 వేరియబల్‌ను ఉపయోగిస్తుంది: %s.",
		manyVars:   "ఇది %d వేరియబల్స్‌ను ఉపయోగిస్తుంది: %s.",
		oneFunc:    "ఇది 1 ఫంక్షన్‌ను నిర్వచిస్తుంది: %s.",
		manyFuncs:  "ఇది %d ఫంక్షన్లను నిర్వచిస్తుంది: %s.",
		controls:   "ప్రోగ్రామ్ నియంత్రణ నిర్మాణాలను ఉపయోగిస్తుంది: %s.",
		low:        "ఇది తక్కువ సంక్లిష్టతతో కూడిన సరళమైన ప్రోగ్రామ్.",
		medium:     "ఇది మధ్యస్థ సంక్లిష్టతతో కూడిన ప్రోగ్రామ్.",
		high:       "ఇది అధునాతన లాజిక్‌తో కూడిన సంక్లిష్టమైన ప్రోగ్రామ్.",
	},
	"hindi": {
		statements: "इस प्रोग्राम में %d कथन हैं।",
		oneVar:     "यह 1 वेरिएबल का उपयोग करता है: %s।",
		manyVars:   "यह %d वेरिएबल्स का उपयोग करता है: %s।",
		oneFunc:    "यह 1 फ़ंक्शन को परिभाषित करता है: %s।",
		manyFuncs:  "यह %d फ़ंक्शन्स को परिभाषित करता है: %s।",
		controls:   "प्रोग्राम नियंत्रण संरचनाओं का उपयोग करता है: %s।",
		low:        "यह कम जटिलता वाला सरल प्रोग्राम है।",
		medium:     "यह मध्यम जटिलता वाला प्रोग्राम है।",
		high:       "यह उन्नत तर्क के साथ जटिल प्रोग्राम है।",
	},
	"sanskrit": {
		statements: "अस्मिन् कार्यक्रमे %d वाक्यानि सन्ति।",
		oneVar:     "एतत् 1 परिमाणस्य उपयोगं करोति: %s।",
		manyVars:   "एतत् %d परिमाणानाम् उपयोगं करोति: %s।",
		oneFunc:    "एतत् 1 क्रियाम् परिभाषयति: %s।",
		manyFuncs:  "एतत् %d क्रियाः परिभाषयति: %s।",
		controls:   "कार्यक्रमः नियन्त्रण संरचनानाम् उपयोगं करोति: %s।",
		low:        "एतत् न्यून जटिलतायाः सरलं कार्यक्रमम् अस्ति।",
		medium:     "एतत् मध्यम जटिलतायाः कार्यक्रमम् अस्ति।",
		high:       "एतत् उन्नत तर्कयुक्तं जटिलं कार्यक्रमम् अस्ति।",
	},
}

func describe(language string, a *Analysis) string {
	phrases, ok := phrasesByLanguage[language]
	if !ok {
		phrases = phrasesByLanguage["english"]
	}

	parts := []string{fmt.Sprintf(phrases.statements, a.TotalStatements)}

	if len(a.Variables) == 1 {
		parts = append(parts, fmt.Sprintf(phrases.oneVar, a.Variables[0]))
	} else if len(a.Variables) > 1 {
		parts = append(parts, fmt.Sprintf(phrases.manyVars, len(a.Variables), strings.Join(a.Variables, ", ")))
	}

	if len(a.Functions) == 1 {
		parts = append(parts, fmt.Sprintf(phrases.oneFunc, a.Functions[0]))
	} else if len(a.Functions) > 1 {
		parts = append(parts, fmt.Sprintf(phrases.manyFuncs, len(a.Functions), strings.Join(a.Functions, ", ")))
	}

	if len(a.ControlStructures) > 0 {
		parts = append(parts, fmt.Sprintf(phrases.controls, strings.Join(uniqueInOrder(a.ControlStructures), ", ")))
	}

	switch {
	case a.ComplexityScore < 5:
		parts = append(parts, phrases.low)
	case a.ComplexityScore < 15:
		parts = append(parts, phrases.medium)
	default:
		parts = append(parts, phrases.high)
	}
	return strings.Join(parts, " ")
}

func uniqueInOrder(items []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
