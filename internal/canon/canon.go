// Package canon rewrites circuits into a restricted gate vocabulary before
// conversion or analysis. Which decompositions run is chosen by a Config.
package canon

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"qanalyse/internal/circuit"
)

// ErrNoFixpoint is returned when rewriting has not settled after the round limit.
var ErrNoFixpoint = errors.New("canon: rewriting did not reach a fixpoint")

const defaultMaxRounds = 256

// Canonicalizer compiles a circuit into an equivalent one.
type Canonicalizer interface {
	Compile(c *circuit.Circuit) (*circuit.Circuit, error)
}

// Compiler is the Config driven Canonicalizer. It is safe for concurrent use.
type Compiler struct {
	cfg       Config
	rules     []rule
	maxRounds int
	log       zerolog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used for per-round debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(k *Compiler) { k.log = l.With().Str("component", "canon").Logger() }
}

// WithMaxRounds bounds the number of rewrite rounds.
func WithMaxRounds(n int) Option {
	return func(k *Compiler) {
		if n > 0 {
			k.maxRounds = n
		}
	}
}

// New returns a compiler bound to a copy of cfg.
func New(cfg Config, opts ...Option) *Compiler {
	k := &Compiler{
		cfg:       cfg,
		rules:     rules(cfg),
		maxRounds: defaultMaxRounds,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Config returns the configuration the compiler was built with.
func (k *Compiler) Config() Config { return k.cfg }

// Compile applies the enabled rewrites until no gate changes. The declared
// qubit count of c is preserved.
func (k *Compiler) Compile(c *circuit.Circuit) (*circuit.Circuit, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	gates := c.Gates()
	for round := 1; round <= k.maxRounds; round++ {
		next := make([]circuit.Gate, 0, len(gates))
		changed := 0
		for _, g := range gates {
			out, ok := k.rewrite(g)
			if !ok {
				next = append(next, g)
				continue
			}
			next = append(next, out...)
			changed++
		}
		gates = next

		if changed == 0 {
			k.log.Debug().
				Int("rounds", round).
				Int("gates_in", c.Len()).
				Int("gates_out", len(gates)).
				Msg("canonicalized")
			return circuit.WithQubits(c.Qubits(), gates...), nil
		}
		k.log.Debug().Int("round", round).Int("rewritten", changed).Int("gates", len(gates)).Msg("rewrite round")
	}

	return nil, fmt.Errorf("%w after %d rounds", ErrNoFixpoint, k.maxRounds)
}

func (k *Compiler) rewrite(g circuit.Gate) ([]circuit.Gate, bool) {
	for _, r := range k.rules {
		if out, ok := r(g); ok {
			return out, true
		}
	}
	return nil, false
}
