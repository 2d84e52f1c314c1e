package paths

import "os"

// Workdir supplies the working directory that relative paths resolve
// against. Injecting it keeps normalization free of process-global state
// and deterministic under test.
type Workdir interface {
	Current() (string, error)
}

type osWorkdir struct{}

func (osWorkdir) Current() (string, error) { return os.Getwd() }

// OSWorkdir returns the provider backed by the real process working
// directory. This is the production default.
func OSWorkdir() Workdir { return osWorkdir{} }

type fixedWorkdir string

func (d fixedWorkdir) Current() (string, error) { return string(d), nil }

// FixedWorkdir returns a provider that always reports dir. dir must be
// absolute. Intended for tests that need machine-independent results.
func FixedWorkdir(dir string) Workdir { return fixedWorkdir(dir) }
