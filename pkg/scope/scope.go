// Package scope implements the stack of name-visibility frames the analyzer
// declares and resolves symbols through. Frames are reclaimed as a whole
// when popped; individual symbols are never deleted.
package scope

import "fmt"

// Symbol is a declared name together with its type and metadata.
type Symbol struct {
	Name        string
	Type        string
	Scope       string // label of the declaring frame
	Initialized bool
	Final       bool
	Static      bool
}

// DuplicateError is raised when a name is declared twice in the same frame.
// The analyzer converts it into a diagnostic and continues.
type DuplicateError struct {
	Name  string
	Scope string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("symbol '%s' is already declared in scope '%s'", e.Name, e.Scope)
}

type frame struct {
	label   string
	symbols map[string]*Symbol
}

// Table is the scope stack. The bottom frame ("global") is never popped.
type Table struct {
	frames     []*frame
	knownTypes map[string]bool
}

// Built-in type names known before any class declaration is seen: numeric
// and boolean primitives, their wrappers, and the common container names.
var builtinTypes = []string{
	"byte", "short", "int", "long", "float", "double", "char", "boolean", "void",
	"Byte", "Short", "Integer", "Long", "Float", "Double", "Character", "Boolean",
	"String", "Object",
	"ArrayList", "LinkedList", "List", "HashMap", "Map", "HashSet", "Set", "Scanner",
}

func NewTable() *Table {
	t := &Table{knownTypes: make(map[string]bool)}
	for _, name := range builtinTypes {
		t.knownTypes[name] = true
	}
	t.frames = append(t.frames, &frame{label: "global", symbols: make(map[string]*Symbol)})
	return t
}

// Enter pushes a new empty frame with the given label.
func (t *Table) Enter(label string) {
	t.frames = append(t.frames, &frame{label: label, symbols: make(map[string]*Symbol)})
}

// Exit pops the innermost frame. Popping the global frame is a no-op.
func (t *Table) Exit() {
	if len(t.frames) > 1 {
		t.frames = t.frames[:len(t.frames)-1]
	}
}

// Current returns the label of the innermost frame.
func (t *Table) Current() string {
	return t.frames[len(t.frames)-1].label
}

// Depth returns the number of live frames, global included.
func (t *Table) Depth() int { return len(t.frames) }

// Declare adds a symbol to the innermost frame. It fails with a
// DuplicateError if the name already exists in that frame; shadowing a name
// from an outer frame is allowed.
func (t *Table) Declare(name, typeName string, final, static bool) (*Symbol, error) {
	top := t.frames[len(t.frames)-1]
	if _, exists := top.symbols[name]; exists {
		return nil, &DuplicateError{Name: name, Scope: top.label}
	}
	sym := &Symbol{
		Name: name, Type: typeName, Scope: top.label,
		Final: final, Static: static,
	}
	top.symbols[name] = sym
	return sym, nil
}

// Lookup walks frames from innermost to outermost and returns the first
// symbol with the given name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	for i := len(t.frames) - 1; i >= 0; i-- {
		if sym, ok := t.frames[i].symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// DeclareType records name as a known class type.
func (t *Table) DeclareType(name string) {
	t.knownTypes[name] = true
}

// IsKnownType reports whether name denotes a built-in or declared type.
// Array forms are known when their element type is.
func (t *Table) IsKnownType(name string) bool {
	if len(name) > 2 && name[len(name)-2:] == "[]" {
		return t.IsKnownType(name[:len(name)-2])
	}
	return t.knownTypes[name]
}
