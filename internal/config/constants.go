package config

const SourceFileExt = ".mlc"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".mlc", ".ml"}

// FixpointIterationCap bounds the recursive-binding effect fixpoint.
// The lattice has finite height, so convergence needs at most one
// iteration per distinct effect label plus one; exceeding the cap is an
// internal-consistency failure, never a user error.
const FixpointIterationCap = 64

// FreshNamePrefix is the prefix for names minted by the monadic rewriter.
const FreshNamePrefix = "x_"

// SynthScrutineePrefix is the prefix for scrutinee names synthesized when
// a function parameter is a non-variable pattern.
const SynthScrutineePrefix = "arg_"

// Well-known effect labels used by the default primitive manifest.
const (
	FailureLabel = "Failure"
	IOLabel      = "IO"
)
