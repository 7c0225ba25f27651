// Package linker implements the Linker/Resolver of spec.md §4.6: it
// walks a parsed ast.Program and produces the parallel runtime node
// graph the tree-walker executes, binding identifiers against a
// compile-time symtab.Table and performing the static type checks
// spec.md names (initializer compatibility, `var` inference, guard/
// catch binding types).
//
// Grounded on the teacher's internal/semantic analyzer pass (binds
// identifiers, checks types against a scoped environment before
// interpretation), trimmed to egg's flat Type lattice and adapted to
// produce internal/runtime nodes instead of annotating the teacher's
// own AST in place.
package linker

import (
	"fmt"

	"github.com/cwbudde/egg/internal/ast"
	"github.com/cwbudde/egg/internal/diag"
	"github.com/cwbudde/egg/internal/runtime"
	"github.com/cwbudde/egg/internal/symtab"
	"github.com/cwbudde/egg/internal/types"
	"github.com/cwbudde/egg/internal/value"
)

// Linker binds one ast.Program against a pre-seeded symbol table
// (builtins already registered by the caller) and lowers it to a
// runtime.Module. Link errors are collected rather than raised
// immediately (spec.md §4.6: "the linker itself does not throw on
// recoverable mismatches — it records them and continues where the
// surrounding production allows").
type Linker struct {
	table  *symtab.Table
	logger *diag.CollectingLogger
	source string
	module *ast.Program
}

// New builds a Linker over table, which must already carry the
// program's builtin registrations (spec.md §4.5's Builtin flavour).
func New(table *symtab.Table, source string) *Linker {
	return &Linker{table: table, logger: &diag.CollectingLogger{}, source: source}
}

// WithModule attaches the parsed program to link, mirroring spec.md
// §6's `Linker.withModule().link()` fluent shape.
func (l *Linker) WithModule(prog *ast.Program) *Linker {
	l.module = prog
	return l
}

// Logger returns the collected diagnostics, available whether or not
// Link succeeded.
func (l *Linker) Logger() *diag.CollectingLogger { return l.logger }

// Link lowers the attached module to a runtime.Module. It returns an
// error (and a nil Module) if any link error was recorded (spec.md
// §4.6/§7: "a compilation with any error fails").
func (l *Linker) Link() (*runtime.Module, error) {
	if l.module == nil {
		return nil, fmt.Errorf("linker: no module attached, call WithModule first")
	}
	block := l.linkProgramBlock(l.module)
	if l.logger.HasErrors() {
		return nil, &Error{Entries: l.logger.Entries}
	}
	return &runtime.Module{Loc: loc(l.module.Pos()), Block: block}, nil
}

// Error aggregates every recorded link error into a single Go error,
// joined one per line in the spec.md §7 "source(line,col): message"
// form.
type Error struct {
	Entries []diag.Message
}

func (e *Error) Error() string {
	out := ""
	for i, m := range e.Entries {
		if i > 0 {
			out += "\n"
		}
		out += m.String()
	}
	return out
}

// loc converts a diag.Location unchanged; kept as a named helper so
// every node-construction call site in this package reads uniformly
// ("loc(n.Location)") regardless of the underlying type.
func loc(l diag.Location) diag.Location { return l }

func (l *Linker) errorAt(at diag.Location, format string, args ...any) error {
	msg := diag.NewMessage(diag.OriginLinker, diag.Error, at, fmt.Sprintf(format, args...))
	l.logger.Log(msg)
	return &msg
}

// linkProgramBlock links the module's top-level statements directly
// into the root frame of l.table (no extra push: spec.md §3 "Program"
// executes within a single root scope, already established by the
// caller before builtins were registered).
func (l *Linker) linkProgramBlock(prog *ast.Program) *runtime.Block {
	block := &runtime.Block{Loc: loc(prog.Pos()), OwnsScope: false}
	for _, stmt := range prog.Statements {
		node, err := l.linkStatement(stmt)
		if err != nil {
			continue
		}
		block.Statements = append(block.Statements, node)
	}
	return block
}

// baseType maps a TypeExpr's spelled name to its canonical types.Type,
// per spec.md §4.2's Type production.
func baseType(name string) (types.Type, bool) {
	switch name {
	case "void":
		return types.VOID, true
	case "bool":
		return types.BOOL, true
	case "int":
		return types.INT, true
	case "float":
		return types.FLOAT, true
	case "string":
		return types.STRING, true
	case "object":
		return types.OBJECT, true
	case "any":
		return types.ANY, true
	default:
		return types.Type{}, false
	}
}

// resolveDeclaredType resolves a TypeExpr that may be the `var`/`var?`
// inferring form (spec.md §4.6: "if the type syntax is var/var?, the
// initializer's resolved type is used; var excludes Null from the
// resulting type, var? adds it").
func (l *Linker) resolveDeclaredType(te *ast.TypeExpr, initType types.Type, hasInit bool) (types.Type, error) {
	if te.IsVar {
		if !hasInit {
			return types.Type{}, l.errorAt(te.Location, "Cannot infer type of 'var' without an initializer")
		}
		t := initType.NonNull()
		if te.Nullable {
			t = t.Nullable()
		}
		return t, nil
	}
	base, ok := baseType(te.Name)
	if !ok {
		return types.Type{}, l.errorAt(te.Location, "Unknown type '%s'", te.Name)
	}
	if te.Nullable {
		base = base.Nullable()
	}
	return base, nil
}

// checkCompatible reports a link error if a value of type from cannot be
// held in a slot of type to (spec.md §4.4's compatibleType intersection
// test, used at every typed insertion point).
func (l *Linker) checkCompatible(at diag.Location, to, from types.Type, context string) error {
	if to.CompatibleType(from).IsEmpty() {
		return l.errorAt(at, "Cannot use %s where %s is expected (%s)", from.String(), to.String(), context)
	}
	return nil
}

// voidPlaceholder is the Value stored against compile-time-only symbol
// table entries; the Linker never executes code, so entries it adds only
// carry a static Type, never a live Value.
var voidPlaceholder = value.Void
