package effects

// Env is a persistent, scoped mapping from qualified-name keys to effect
// types. Every extension returns a new Env; the receiver is never
// mutated, so sibling scopes (e.g. match arms) can be built from the same
// parent independently.
type Env struct {
	frame map[string]EffectType
	outer *Env
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{frame: map[string]EffectType{}}
}

// NewEnvFrom seeds an environment with the given bindings.
func NewEnvFrom(bindings map[string]EffectType) *Env {
	frame := make(map[string]EffectType, len(bindings))
	for k, v := range bindings {
		frame[k] = v
	}
	return &Env{frame: frame}
}

// Bind returns a new environment with name bound to et. Prior bindings
// for other names are unaffected.
func (e *Env) Bind(name string, et EffectType) *Env {
	return &Env{frame: map[string]EffectType{name: et}, outer: e}
}

// BindAllPure returns a new environment with every name bound to Pure.
// Used when entering a function body: arguments carry no latent effect.
func (e *Env) BindAllPure(names []string) *Env {
	if len(names) == 0 {
		return e
	}
	frame := make(map[string]EffectType, len(names))
	for _, n := range names {
		frame[n] = Pure
	}
	return &Env{frame: frame, outer: e}
}

// Lookup resolves name through the scope chain. A miss for a well-scoped
// program is an internal-consistency failure at the caller.
func (e *Env) Lookup(name string) (EffectType, bool) {
	for env := e; env != nil; env = env.outer {
		if et, ok := env.frame[name]; ok {
			return et, true
		}
	}
	return nil, false
}

// Has reports whether name is bound anywhere in the scope chain.
func (e *Env) Has(name string) bool {
	_, ok := e.Lookup(name)
	return ok
}
