// Package egg is the facade over the full pipeline of spec.md §2:
// source text -> Tokenizer -> Parser -> Linker -> Program, and
// Program.Run(logger) to execute it. It owns the one piece of wiring
// the stage packages deliberately don't: building a fresh symtab.Table
// pre-seeded with internal/builtins' registrations before linking and
// running (spec.md §4.5's Builtin flavour entries must exist before the
// Linker resolves any identifier against them).
//
// Grounded on the teacher's pkg/dwscript facade (Compile/Run wrapping
// the teacher's own Lexer->Parser->Analyzer->Interpreter pipeline).
package egg

import (
	"fmt"

	"github.com/cwbudde/egg/internal/builtins"
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/linker"
	"github.com/cwbudde/egg/internal/parser"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/symtab"
)

// Module is one linked compilation unit: its source identifier and root
// runtime node.
type Module struct {
	Source string
	Root   *runtime.Module
}

// Program is an ordered list of linked Modules (spec.md §3). The
// current pipeline only ever produces a single Module: "Current design
// executes a single module... multi-module is reserved."
type Program struct {
	Modules []Module
	table   *symtab.Table
}

// Compile runs the full pipeline (lex -> parse -> link) over a single
// source, returning either a runnable Program or the first fatal stage
// error (Tokenizer/Parser errors are fatal immediately, per spec.md §7)
// or a *linker.Error aggregating every collected link error.
func Compile(source, input string) (*Program, error) {
	table := symtab.New()
	builtins.Register(table)

	p, err := parser.FromString(source, input)
	if err != nil {
		return nil, err
	}
	prog, err := p.Parse()
	if err != nil {
		return nil, err
	}

	// The linker leaves Void placeholder entries in the root frame of the
	// table it binds against, so it links against its own table; the
	// Runner's table only receives declarations when they execute.
	linkTable := symtab.New()
	builtins.Register(linkTable)
	lk := linker.New(linkTable, source)
	mod, err := lk.WithModule(prog).Link()
	if err != nil {
		return nil, err
	}

	return &Program{
		Modules: []Module{{Source: source, Root: mod}},
		table:   table,
	}, nil
}

// Run executes the Program's single module against logger, per spec.md
// §9's open-question decision: "Program.run asserts len(Modules) == 1;
// true multi-module linking is left unimplemented." A raised runtime
// error is reported to the logger as a fatal Error entry and returned,
// matching spec.md §5's "surfaces to Program.run as a fatal error
// reported to the logger".
func (p *Program) Run(logger diag.Logger) error {
	if len(p.Modules) != 1 {
		return fmt.Errorf("egg: Program.Run requires exactly one module, got %d", len(p.Modules))
	}
	mod := p.Modules[0]
	r := runtime.NewRunner(p.table, logger, mod.Source)
	_, err := mod.Root.Execute(r)
	if err != nil {
		if re, ok := err.(*runtime.RuntimeError); ok {
			logger.Log(diag.NewMessage(diag.OriginRuntime, diag.Error, re.Location, re.Exception.Message))
			return re
		}
		logger.Log(diag.NewMessage(diag.OriginRuntime, diag.Error, diag.Location{Source: mod.Source}, err.Error()))
		return err
	}
	return nil
}
