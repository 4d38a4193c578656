// Package types implements the promotion and compatibility rules of the
// source type system as pure functions over type names. Nothing in here
// touches the AST or the scope table.
package types

import (
	"strings"

	"fortio.org/safecast"
)

// Unknown is the type assigned to expressions the analyzer cannot resolve
// (library calls, unresolved qualified names). It is compatible with
// everything so that one unresolved name does not cascade into noise.
const Unknown = ""

// Numeric promotion order. char participates as numeric; it is placed after
// short and before int, the conventional resolution of the source language's
// ambiguity on where char widens to.
var numericOrder = map[string]int{
	"byte":   0,
	"short":  1,
	"char":   2,
	"int":    3,
	"long":   4,
	"float":  5,
	"double": 6,
}

var wrapperOf = map[string]string{
	"byte":    "Byte",
	"short":   "Short",
	"int":     "Integer",
	"long":    "Long",
	"float":   "Float",
	"double":  "Double",
	"char":    "Character",
	"boolean": "Boolean",
}

var primitiveOf = make(map[string]string)

func init() {
	for p, w := range wrapperOf {
		primitiveOf[w] = p
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IsNumeric reports whether name is a numeric type. The membership test is
// case-insensitive.
func IsNumeric(name string) bool {
	_, ok := numericOrder[normalize(name)]
	return ok
}

func IsBoolean(name string) bool { return normalize(name) == "boolean" }

func IsString(name string) bool {
	n := normalize(name)
	return n == "string"
}

// IsPrimitive reports whether name is a primitive type name.
func IsPrimitive(name string) bool {
	return IsNumeric(name) || IsBoolean(name)
}

// IsArray reports whether name is the textual array form "T[]".
func IsArray(name string) bool { return strings.HasSuffix(name, "[]") }

// Promote returns the wider of two numeric types. It returns Unknown when
// either operand is not numeric. Promote is commutative.
func Promote(t1, t2 string) string {
	i1, ok1 := numericOrder[normalize(t1)]
	i2, ok2 := numericOrder[normalize(t2)]
	if !ok1 || !ok2 {
		return Unknown
	}
	if i1 >= i2 {
		return orderedNames[i1]
	}
	return orderedNames[i2]
}

var orderedNames = []string{"byte", "short", "char", "int", "long", "float", "double"}

// Compatible reports whether a value of type from may be used where type to
// is expected: equal types, numeric widening (from's order index at or below
// to's), string/null pairing, and null against any reference type. No class
// hierarchy reasoning is performed.
func Compatible(from, to string) bool {
	if from == Unknown || to == Unknown {
		return true
	}
	if normalize(from) == normalize(to) {
		return true
	}
	if normalize(to) == "object" {
		return !IsPrimitive(from)
	}
	// Container types match on the erased name, so a diamond-form creator
	// assigns to a parameterized declaration.
	if Erase(from) != from || Erase(to) != to {
		if normalize(Erase(from)) == normalize(Erase(to)) {
			return true
		}
	}
	fi, fok := numericOrder[normalize(from)]
	ti, tok := numericOrder[normalize(to)]
	if fok && tok {
		return fi <= ti
	}
	// Boxing correspondence: a primitive and its declared wrapper are
	// interchangeable.
	if w, ok := wrapperOf[normalize(from)]; ok && w == to {
		return true
	}
	if p, ok := primitiveOf[from]; ok && p == normalize(to) {
		return true
	}
	if normalize(from) == "null" {
		return !IsPrimitive(to)
	}
	if normalize(to) == "null" {
		return IsString(from)
	}
	return false
}

// CanCast reports whether an explicit cast from one type to the other is
// permitted. Casting to Object always succeeds; primitive-to-primitive casts
// follow the widening table; boolean casts only to boolean; primitives cast
// to and from their declared wrapper types.
func CanCast(from, to string) bool {
	nf, nt := normalize(from), normalize(to)
	if nt == "object" {
		return true
	}
	if nf == nt {
		return true
	}
	fi, fok := numericOrder[nf]
	ti, tok := numericOrder[nt]
	if fok && tok {
		return fi <= ti
	}
	if w, ok := wrapperOf[nf]; ok && w == to {
		return true
	}
	if p, ok := primitiveOf[from]; ok && p == nt {
		return true
	}
	// Everything else, boolean conversions included, is rejected.
	return false
}

// IsCollectionType is the name-based heuristic used by the for-each check:
// the name mentions a container family or is an array form.
func IsCollectionType(name string) bool {
	if IsArray(name) {
		return true
	}
	n := normalize(name)
	for _, frag := range []string{"list", "set", "map", "array"} {
		if strings.Contains(n, frag) {
			return true
		}
	}
	return false
}

// ElementType extracts the element type of a collection name: "int[]" yields
// "int", "ArrayList<String>" yields "String". Anything else yields Unknown.
func ElementType(name string) string {
	if IsArray(name) {
		return strings.TrimSuffix(name, "[]")
	}
	if open := strings.Index(name, "<"); open >= 0 {
		if close := strings.LastIndex(name, ">"); close > open {
			return strings.TrimSpace(name[open+1 : close])
		}
	}
	return Unknown
}

// Erase strips generic arguments from a type name: "ArrayList<String>"
// yields "ArrayList". Non-generic names pass through unchanged.
func Erase(name string) string {
	if open := strings.Index(name, "<"); open >= 0 {
		return strings.TrimSpace(name[:open])
	}
	return name
}

// FitsIn reports whether an integer literal value is in range for the given
// integral type. Non-integral targets report true; range checking of
// floating values is out of scope.
func FitsIn(typeName string, v int64) bool {
	switch normalize(typeName) {
	case "byte":
		_, err := safecast.Conv[int8](v)
		return err == nil
	case "short":
		_, err := safecast.Conv[int16](v)
		return err == nil
	case "char":
		_, err := safecast.Conv[uint16](v)
		return err == nil
	case "int":
		_, err := safecast.Conv[int32](v)
		return err == nil
	default:
		return true
	}
}
