package graph

import (
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/tensor"
)

// Engine owns the backend used to realize nodes and the evaluation mode.
type Engine struct {
	backend tensor.Backend
	lazy    bool
	nextID  atomic.Int64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLazy selects lazy evaluation: applying an operator only records it, and
// the forward value is computed on the first Realize. The default is eager.
func WithLazy(lazy bool) Option {
	return func(e *Engine) {
		e.lazy = lazy
	}
}

// New creates an Engine computing with the given backend.
func New(backend tensor.Backend, options ...Option) *Engine {
	if backend == nil {
		exceptions.Panicf("graph.New: nil backend")
	}
	e := &Engine{backend: backend}
	for _, option := range options {
		option(e)
	}
	klog.V(2).Infof("graph engine on %s backend (lazy=%v)", backend.Name(), e.lazy)
	return e
}

// Backend returns the backend used for forward computation.
func (e *Engine) Backend() tensor.Backend {
	return e.backend
}

// Lazy reports whether the engine defers forward computation.
func (e *Engine) Lazy() bool {
	return e.lazy
}

// Variable creates a leaf node that requires gradients.
func (e *Engine) Variable(value *tensor.RawTensor) *Node {
	return e.leaf(value, true)
}

// Constant creates a leaf node that does not require gradients.
func (e *Engine) Constant(value *tensor.RawTensor) *Node {
	return e.leaf(value, false)
}

func (e *Engine) leaf(value *tensor.RawTensor, requiresGrad bool) *Node {
	if value == nil {
		exceptions.Panicf("graph: leaf node needs a value")
	}
	return &Node{
		id:           e.nextID.Add(1),
		engine:       e,
		value:        value,
		requiresGrad: requiresGrad,
	}
}

// Apply creates the node op(inputs...). All inputs must belong to the same
// engine and their count must match op.Arity().
//
// The new node requires gradients iff any input does. Eager engines compute
// the value immediately; a result that does not require gradients is then
// detached from its inputs, since no backward pass will reach through it.
func Apply(op Operator, inputs ...*Node) *Node {
	if len(inputs) != op.Arity() {
		exceptions.Panicf("%s takes %d inputs, got %d", op, op.Arity(), len(inputs))
	}
	if len(inputs) == 0 {
		exceptions.Panicf("%s: operators need at least one input", op)
	}

	e := inputs[0].engine
	requiresGrad := false
	for i, input := range inputs {
		if input == nil {
			exceptions.Panicf("%s: input #%d is nil", op, i)
		}
		if input.engine != e {
			exceptions.Panicf("%s: input #%d belongs to a different engine", op, i)
		}
		requiresGrad = requiresGrad || input.requiresGrad
	}

	node := &Node{
		id:           e.nextID.Add(1),
		engine:       e,
		op:           op,
		inputs:       append([]*Node(nil), inputs...),
		requiresGrad: requiresGrad,
	}
	if !e.lazy {
		node.Realize()
		if !requiresGrad {
			node.op, node.inputs = nil, nil
		}
	}
	return node
}
