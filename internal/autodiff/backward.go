// Package autodiff implements reverse-mode automatic differentiation over
// the computation graph.
//
// Backward walks the graph from an output node in reverse topological order.
// For each operator node it asks the operator for the vector-Jacobian product
// with respect to its inputs and accumulates the results, summing when an
// input is consumed by several operators. Gradients are themselves graph
// nodes built from the operator catalogue, so they can be differentiated
// again.
//
// Usage:
//
//	engine := graph.New(cpu.New())
//	x := engine.Variable(must.M1(tensor.FromSlice([]float64{3}, tensor.Shape{1})))
//	y := ops.Multiply(x, x) // y = x²
//	grads := autodiff.Backward(y, nil)
//	fmt.Println(grads.Of(x).Realize()) // dy/dx = 2x = 6
package autodiff

import (
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/born-ml/vjp/internal/autodiff/ops"
	"github.com/born-ml/vjp/internal/graph"
	"github.com/born-ml/vjp/internal/tensor"
)

// Gradients maps nodes to the gradient of the backward output with respect
// to them.
type Gradients map[*graph.Node]*graph.Node

// Of returns the gradient for n, or nil if no gradient reached it.
func (g Gradients) Of(n *graph.Node) *graph.Node {
	return g[n]
}

// Backward computes the gradients of output with respect to every node it
// depends on that requires gradients.
//
// outGrad is the gradient flowing into output and must have output's shape;
// nil means ones (the usual choice for a scalar loss).
//
// Algorithm:
//  1. Order the nodes reachable from output topologically
//  2. Walk them in reverse, summing the partial gradients of each node
//  3. Ask each operator for the gradients of its inputs (chain rule)
//
// Backward panics if an operator returns the wrong number of gradients or a
// gradient whose shape differs from its input: both are bugs in the operator
// catalogue.
func Backward(output, outGrad *graph.Node) Gradients {
	engine := output.Engine()
	if outGrad == nil {
		outGrad = engine.Constant(tensor.OnesLike(output.Realize()))
	} else if !outGrad.Shape().Equal(output.Shape()) {
		exceptions.Panicf("backward: output gradient shape %s does not match output shape %s",
			outGrad.Shape(), output.Shape())
	}

	order := topoSort(output)
	klog.V(2).Infof("backward from %s over %d nodes", output, len(order))

	partials := map[*graph.Node][]*graph.Node{output: {outGrad}}
	grads := make(Gradients, len(order))

	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		parts, ok := partials[node]
		if !ok {
			continue
		}
		delete(partials, node)
		grad := sumPartials(parts)
		grads[node] = grad

		if node.IsLeaf() {
			continue
		}
		inputs := node.Inputs()
		inputGrads := node.Op().Gradient(grad, node)
		if len(inputGrads) != len(inputs) {
			exceptions.Panicf("backward: %s returned %d gradients for %d inputs",
				node.Op(), len(inputGrads), len(inputs))
		}
		for j, input := range inputs {
			if !input.RequiresGrad() {
				continue
			}
			inputGrad := inputGrads[j]
			if inputGrad == nil {
				exceptions.Panicf("backward: %s returned a nil gradient for input #%d", node.Op(), j)
			}
			if !inputGrad.Shape().Equal(input.Shape()) {
				exceptions.Panicf("backward: %s returned gradient of shape %s for input #%d of shape %s",
					node.Op(), inputGrad.Shape(), j, input.Shape())
			}
			partials[input] = append(partials[input], inputGrad)
		}
		if klog.V(3).Enabled() {
			klog.Infof("backward: %s -> %d input gradients", node, len(inputGrads))
		}
	}

	return grads
}

// Grad returns the gradients of output with respect to each node of wrt, in
// order. Nodes that output does not depend on get a zero gradient.
func Grad(output *graph.Node, wrt ...*graph.Node) []*graph.Node {
	grads := Backward(output, nil)
	result := make([]*graph.Node, len(wrt))
	for i, n := range wrt {
		if g := grads.Of(n); g != nil {
			result[i] = g
			continue
		}
		result[i] = n.Engine().Constant(tensor.ZerosLike(n.Realize()))
	}
	return result
}

// sumPartials adds up the gradient contributions of every consumer.
func sumPartials(parts []*graph.Node) *graph.Node {
	sum := parts[0]
	for _, part := range parts[1:] {
		sum = ops.Add(sum, part)
	}
	return sum
}

// topoSort returns the nodes reachable from root that require gradients, in
// topological order (inputs before the nodes consuming them). Iterative
// post-order DFS, so deep graphs do not grow the goroutine stack.
func topoSort(root *graph.Node) []*graph.Node {
	type frame struct {
		node *graph.Node
		next int
	}

	var order []*graph.Node
	visited := map[*graph.Node]bool{root: true}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		inputs := top.node.Inputs()
		if top.next < len(inputs) {
			input := inputs[top.next]
			top.next++
			if !visited[input] && input.RequiresGrad() {
				visited[input] = true
				stack = append(stack, frame{node: input})
			}
			continue
		}
		order = append(order, top.node)
		stack = stack[:len(stack)-1]
	}
	return order
}
