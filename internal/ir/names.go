package ir

import "strings"

// Name is a path-qualified identifier: zero or more module segments plus
// a base identifier. Treated as an opaque printable leaf by the
// translation core.
type Name struct {
	Path []string
	Base string
}

// NewName builds an unqualified name.
func NewName(base string) Name {
	return Name{Base: base}
}

// NewQualified builds a name under the given module path.
func NewQualified(base string, path ...string) Name {
	return Name{Path: path, Base: base}
}

// Key is the stable identity used for environment lookups.
func (n Name) Key() string {
	if len(n.Path) == 0 {
		return n.Base
	}
	return strings.Join(n.Path, ".") + "." + n.Base
}

func (n Name) String() string { return n.Key() }

// Equal compares names by full path and base.
func (n Name) Equal(other Name) bool {
	return n.Key() == other.Key()
}

// ConstKind discriminates constant literal forms.
type ConstKind int

const (
	ConstUnit ConstKind = iota
	ConstInt
	ConstFloat
	ConstBool
	ConstString
	ConstChar
)

// Constant is an opaque printable literal.
type Constant struct {
	Kind ConstKind
	Text string // the literal exactly as it will be re-emitted
}

// UnitConstant is the unit value, used as an implicit else branch.
var UnitConstant = Constant{Kind: ConstUnit, Text: "tt"}

// IsUnit reports whether the constant is the unit value.
func (c Constant) IsUnit() bool { return c.Kind == ConstUnit }

func (c Constant) String() string {
	if c.Kind == ConstString {
		return "\"" + c.Text + "\""
	}
	return c.Text
}
