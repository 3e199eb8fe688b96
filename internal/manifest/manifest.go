// Package manifest loads effect signatures for external primitives.
// The translated program cannot see into Stdlib.failwith or print_int;
// the manifest is where their latent effects are declared.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/purelift/internal/config"
	"github.com/funvibe/purelift/internal/diagnostics"
	"github.com/funvibe/purelift/internal/effects"
	"github.com/funvibe/purelift/internal/token"
)

// Entry declares one primitive: its qualified name and the effect
// descriptor of each arrow in its curried signature, outermost first.
// A nullary entry (no arrows) is a plain effect-free value.
type Entry struct {
	Name   string     `yaml:"name"`
	Arrows [][]string `yaml:"arrows"`
}

// Manifest is the top-level document shape.
type Manifest struct {
	Effects []Entry `yaml:"effects"`
}

// Default returns the built-in signatures that are always in scope.
func Default() *effects.Env {
	env, err := Seed(builtins())
	if err != nil {
		// The built-in table is static; a failure here is a bug.
		panic(fmt.Sprintf("built-in effect table: %v", err))
	}
	return env
}

func builtins() []Entry {
	return []Entry{
		{Name: "Stdlib.failwith", Arrows: [][]string{{config.FailureLabel}}},
		{Name: "Stdlib.invalid_arg", Arrows: [][]string{{config.FailureLabel}}},
		{Name: "Stdlib.print_int", Arrows: [][]string{{config.IOLabel}}},
		{Name: "Stdlib.print_string", Arrows: [][]string{{config.IOLabel}}},
		{Name: "Stdlib.print_newline", Arrows: [][]string{{config.IOLabel}}},
		{Name: "Stdlib.read_line", Arrows: [][]string{{config.IOLabel}}},
		{Name: "Stdlib.fst", Arrows: [][]string{{}}},
		{Name: "Stdlib.snd", Arrows: [][]string{{}}},
		{Name: "Stdlib.not", Arrows: [][]string{{}}},
		{Name: "Stdlib.succ", Arrows: [][]string{{}}},
		{Name: "Stdlib.pred", Arrows: [][]string{{}}},
		{Name: "Stdlib.compare", Arrows: [][]string{{}, {}}},
		{Name: "Stdlib.min", Arrows: [][]string{{}, {}}},
		{Name: "Stdlib.max", Arrows: [][]string{{}, {}}},
	}
}

// Load reads a YAML manifest file and extends the default environment
// with its entries. Manifest entries may shadow built-ins.
func Load(path string) (*effects.Env, *diagnostics.DiagnosticError) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrM001, token.Token{}, err.Error())
	}
	return Parse(data)
}

// Parse decodes manifest bytes and extends the default environment.
func Parse(data []byte) (*effects.Env, *diagnostics.DiagnosticError) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, diagnostics.NewError(diagnostics.ErrM001, token.Token{}, err.Error())
	}
	env := Default()
	seen := make(map[string]bool, len(m.Effects))
	for _, entry := range m.Effects {
		if entry.Name == "" {
			return nil, diagnostics.NewError(diagnostics.ErrM001, token.Token{}, "entry with empty name")
		}
		if seen[entry.Name] {
			return nil, diagnostics.NewError(diagnostics.ErrM002, token.Token{}, entry.Name)
		}
		seen[entry.Name] = true
		env = env.Bind(entry.Name, signature(entry))
	}
	return env, nil
}

// Seed builds an environment from scratch, without the defaults.
func Seed(entries []Entry) (*effects.Env, *diagnostics.DiagnosticError) {
	bindings := make(map[string]effects.EffectType, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, diagnostics.NewError(diagnostics.ErrM001, token.Token{}, "entry with empty name")
		}
		if _, dup := bindings[entry.Name]; dup {
			return nil, diagnostics.NewError(diagnostics.ErrM002, token.Token{}, entry.Name)
		}
		bindings[entry.Name] = signature(entry)
	}
	return effects.NewEnvFrom(bindings), nil
}

func signature(entry Entry) effects.EffectType {
	if len(entry.Arrows) == 0 {
		return effects.Pure
	}
	descs := make([]effects.Descriptor, len(entry.Arrows))
	for i, labels := range entry.Arrows {
		descs[i] = effects.NewDescriptor(labels...)
	}
	return effects.MakeArrow(effects.Pure, descs...)
}
