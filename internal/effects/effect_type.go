package effects

import "fmt"

// EffectType describes the latent effect of a value.
// Pure is the effect type of plain data; an Arrow chain describes a
// curried function where applying one argument discharges the arrow's
// descriptor as the call's own effect.
type EffectType interface {
	String() string
	Equal(EffectType) bool
	IsPure() bool
}

// TPure is the effect type of a value with no latent effect.
type TPure struct{}

func (t TPure) String() string { return "." }
func (t TPure) IsPure() bool   { return true }
func (t TPure) Equal(other EffectType) bool {
	_, ok := other.(TPure)
	return ok
}

// TArrow is one step of a curried effect signature: applying one argument
// discharges Desc, and the result has effect type Next.
type TArrow struct {
	Desc Descriptor
	Next EffectType
}

func (t TArrow) String() string {
	return fmt.Sprintf("(%s -> %s)", t.Desc.String(), t.Next.String())
}
func (t TArrow) IsPure() bool { return false }
func (t TArrow) Equal(other EffectType) bool {
	o, ok := other.(TArrow)
	if !ok {
		return false
	}
	return t.Desc.Equal(o.Desc) && t.Next.Equal(o.Next)
}

// Pure is the canonical pure effect type.
var Pure EffectType = TPure{}

// MakeArrow builds an n-deep arrow chain ending in final.
// e.g. MakeArrow(Pure, d1, d2) = (d1 -> (d2 -> .))
func MakeArrow(final EffectType, descs ...Descriptor) EffectType {
	if len(descs) == 0 {
		return final
	}
	return TArrow{Desc: descs[0], Next: MakeArrow(final, descs[1:]...)}
}

// Effect is the full annotation inferred for an expression node: the
// effects performed by evaluating it, plus the latent effect of its value.
type Effect struct {
	Desc Descriptor
	Type EffectType
}

// IsPure reports whether the effect is empty in both components.
func (e Effect) IsPure() bool {
	return e.Desc.IsPure() && e.Type.IsPure()
}

func (e Effect) String() string {
	return fmt.Sprintf("%s %s", e.Desc.String(), e.Type.String())
}
