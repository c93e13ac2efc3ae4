package checker

import (
	"github.com/forestlang/tree/internal/ast"
	"github.com/forestlang/tree/internal/typedast"
)

// TypedConstructor is one constructor registered under a type lambda:
// its name, its 0-based tag within the ADT, and its field types in
// order (spec 3, "Compile state").
type TypedConstructor struct {
	Name       string
	Tag        int
	FieldTypes []Type
}

// state is the compile state threaded left-to-right across top-level
// checking (spec 3, "Compile state"). It is mutated monotonically -
// errors and declarations are appended, never removed - and owned
// exclusively by the driver loop (CheckModule), matching the
// single-threaded, no-aliasing model spec section 5 describes.
type state struct {
	errors []*CompileError

	typeLambdaOrder []string
	types           map[string]Type

	declOrder []string
	decls     map[string]*typedast.TypedDeclaration

	constructors map[string][]*TypedConstructor

	lineInfo *ast.LineInformation
}

func newState(lineInfo *ast.LineInformation) *state {
	s := &state{
		types:        make(map[string]Type),
		decls:        make(map[string]*typedast.TypedDeclaration),
		constructors: make(map[string][]*TypedConstructor),
		lineInfo:     lineInfo,
	}
	s.types["Int"] = Num{}
	s.types["Float"] = FloatType{}
	s.types["String"] = Str{}
	return s
}

func (s *state) addError(e *CompileError) {
	s.errors = append(s.errors, e)
}

func (s *state) registerTypeLambda(name string, t Type) {
	if _, exists := s.types[name]; !exists {
		s.typeLambdaOrder = append(s.typeLambdaOrder, name)
	}
	s.types[name] = t
}

func (s *state) lookupType(name string) (Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

func (s *state) registerConstructor(typeLambda string, c *TypedConstructor) {
	s.constructors[typeLambda] = append(s.constructors[typeLambda], c)
}

func (s *state) constructorsOf(typeLambda string) []*TypedConstructor {
	return s.constructors[typeLambda]
}

// scope is the value-level environment visible while checking one
// declaration's body: the module-level declarations plus whatever
// local bindings (function arguments, pattern variables, let
// bindings) are in effect at this point. Forest has no shadowing
// across scopes (a non-goal), so lookups never need to prefer an
// inner binding over an outer one with the same name - but we still
// chain maps the way the teacher's TypeEnv does, since let-bindings
// are genuinely nested.
type scope struct {
	parent *scope
	vars   map[string]*typedast.TypedDeclaration
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, vars: make(map[string]*typedast.TypedDeclaration)}
}

func (sc *scope) bind(name string, decl *typedast.TypedDeclaration) {
	sc.vars[name] = decl
}

func (sc *scope) lookup(name string) (*typedast.TypedDeclaration, bool) {
	for s := sc; s != nil; s = s.parent {
		if d, ok := s.vars[name]; ok {
			return d, true
		}
	}
	return nil, false
}

func (s *state) moduleScope() *scope {
	sc := newScope(nil)
	for _, name := range s.declOrder {
		sc.bind(name, s.decls[name])
	}
	return sc
}

func (s *state) addDeclaration(d *typedast.TypedDeclaration) {
	if _, exists := s.decls[d.Name]; !exists {
		s.declOrder = append(s.declOrder, d.Name)
	}
	s.decls[d.Name] = d
}
