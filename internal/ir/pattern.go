package ir

import "strings"

// Pattern is an opaque printable match pattern. Beyond printing, the
// core only needs the set of names a pattern binds, used when extending
// effect environments for match arms.
type Pattern interface {
	patternNode()
	String() string
	BoundNames() []Name
}

// PWildcard matches anything and binds nothing.
type PWildcard struct{}

func (p *PWildcard) patternNode()       {}
func (p *PWildcard) String() string     { return "_" }
func (p *PWildcard) BoundNames() []Name { return nil }

// PVar binds the matched value to a name.
type PVar struct {
	Name Name
}

func (p *PVar) patternNode()       {}
func (p *PVar) String() string     { return p.Name.String() }
func (p *PVar) BoundNames() []Name { return []Name{p.Name} }

// PConst matches a literal.
type PConst struct {
	Value Constant
}

func (p *PConst) patternNode()       {}
func (p *PConst) String() string     { return p.Value.String() }
func (p *PConst) BoundNames() []Name { return nil }

// PTuple destructures a tuple.
type PTuple struct {
	Elements []Pattern
}

func (p *PTuple) patternNode() {}
func (p *PTuple) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (p *PTuple) BoundNames() []Name {
	var names []Name
	for _, e := range p.Elements {
		names = append(names, e.BoundNames()...)
	}
	return names
}

// PCtor destructures a constructor application.
type PCtor struct {
	Tag  Name
	Args []Pattern
}

func (p *PCtor) patternNode() {}
func (p *PCtor) String() string {
	if len(p.Args) == 0 {
		return p.Tag.String()
	}
	parts := make([]string, 0, len(p.Args)+1)
	parts = append(parts, p.Tag.String())
	for _, a := range p.Args {
		if _, ok := a.(*PCtor); ok && len(a.(*PCtor).Args) > 0 {
			parts = append(parts, "("+a.String()+")")
		} else {
			parts = append(parts, a.String())
		}
	}
	return strings.Join(parts, " ")
}
func (p *PCtor) BoundNames() []Name {
	var names []Name
	for _, a := range p.Args {
		names = append(names, a.BoundNames()...)
	}
	return names
}
