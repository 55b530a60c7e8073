package graph

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/tensor"
)

// Node is a value in the computation graph: either a leaf holding a tensor,
// or the result of applying an Operator to input nodes.
//
// Nodes are immutable once created except for caching their realized value.
// Realizing the same node from multiple goroutines is not supported.
type Node struct {
	id           int64
	engine       *Engine
	op           Operator
	inputs       []*Node
	value        *tensor.RawTensor
	requiresGrad bool
}

// ID returns a number unique among the nodes of the engine, increasing in
// creation order.
func (n *Node) ID() int64 {
	return n.id
}

// Engine returns the engine that owns the node.
func (n *Node) Engine() *Engine {
	return n.engine
}

// Op returns the operator that produced the node, or nil for leaves.
func (n *Node) Op() Operator {
	return n.op
}

// Inputs returns the operand nodes, in order. Leaves have none.
// The returned slice must not be modified.
func (n *Node) Inputs() []*Node {
	return n.inputs
}

// IsLeaf reports whether the node has no recorded operator.
func (n *Node) IsLeaf() bool {
	return n.op == nil
}

// RequiresGrad reports whether gradients flow to this node.
func (n *Node) RequiresGrad() bool {
	return n.requiresGrad
}

// Realize returns the forward value, computing and caching it (and any
// unrealized inputs) on first use.
func (n *Node) Realize() *tensor.RawTensor {
	if n.value != nil {
		return n.value
	}
	values := make([]*tensor.RawTensor, len(n.inputs))
	for i, input := range n.inputs {
		values[i] = input.Realize()
	}
	n.value = n.op.Compute(n.engine.backend, values...)
	if klog.V(3).Enabled() {
		klog.Infof("realized %s -> %s", n, n.value.Shape())
	}
	return n.value
}

// IsRealized reports whether the forward value is already cached.
func (n *Node) IsRealized() bool {
	return n.value != nil
}

// Shape returns the shape of the realized value.
func (n *Node) Shape() tensor.Shape {
	return n.Realize().Shape()
}

// Detach returns a constant leaf sharing n's realized value.
func (n *Node) Detach() *Node {
	return n.engine.Constant(n.Realize())
}

// String returns a short description such as "#12:MatMul(#3, #7)".
func (n *Node) String() string {
	if n.op == nil {
		if n.requiresGrad {
			return fmt.Sprintf("#%d:Variable", n.id)
		}
		return fmt.Sprintf("#%d:Constant", n.id)
	}
	s := fmt.Sprintf("#%d:%s(", n.id, n.op)
	for i, input := range n.inputs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("#%d", input.id)
	}
	return s + ")"
}
