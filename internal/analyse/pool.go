package analyse

import (
	"slices"
	"strings"
	"sync"

	"qanalyse/internal/arch"
)

type poolKey struct {
	name   string
	qubits int
}

// MaxPooled bounds the number of analysers a Pool keeps. The oldest entry is
// dropped first.
const MaxPooled = 32

// Pool shares one Analyser per architecture and qubit count. It is safe for
// concurrent use.
type Pool struct {
	mu        sync.Mutex
	opts      []Option
	analysers map[poolKey]*Analyser
	order     []poolKey
}

// NewPool returns a pool whose analysers are built with opts.
func NewPool(opts ...Option) *Pool {
	return &Pool{opts: opts, analysers: make(map[poolKey]*Analyser)}
}

// Get returns the analyser bound to the named catalog architecture, building
// it on first use. An empty name gives an unrouted analyser.
func (p *Pool) Get(name string, qubits int) (*Analyser, error) {
	key := poolKey{name: strings.ToLower(name), qubits: qubits}
	if key.name != "" && !arch.Scalable(key.name) && qubits > 0 {
		// fixed devices share one entry across requested sizes
		if _, err := arch.Select(key.name, qubits); err != nil {
			return nil, err
		}
		key.qubits = 0
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if a, ok := p.analysers[key]; ok {
		return a, nil
	}

	opts := slices.Clone(p.opts)
	if key.name != "" {
		ar, err := arch.Select(key.name, qubits)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithArchitecture(ar))
	}
	a, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if len(p.order) == MaxPooled {
		delete(p.analysers, p.order[0])
		p.order = p.order[1:]
	}
	p.analysers[key] = a
	p.order = append(p.order, key)
	return a, nil
}

// Len returns the number of analysers built so far.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.analysers)
}
