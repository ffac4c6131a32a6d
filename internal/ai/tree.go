package ai

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is returned by Builder.Build for graphs that cannot be
// traversed: empty graphs, dangling references, missing predicates, cycles.
var ErrMalformedTree = errors.New("malformed behavior tree")

// NodeID is the symbolic address of a condition node.
type NodeID string

// Predicate is a condition evaluated with no arguments.
type Predicate func() bool

// Branch is one outgoing edge of a condition: either a nested condition
// or a terminal action.
type Branch[A any] struct {
	next   NodeID
	action A
	leaf   bool
}

type condition[A any] struct {
	id        NodeID
	predicate Predicate
	branches  [2]Branch[A] // [onFalse, onTrue]
}

// Tree is an immutable binary decision graph. Condition nodes choose a
// branch; leaves hold the action returned to the caller.
type Tree[A any] struct {
	root  int
	nodes []condition[A]
	index map[NodeID]int
}

// FindAction walks the graph from the root and returns the bound action of
// the first leaf reached. The action is not invoked.
func (t *Tree[A]) FindAction() A {
	action, _ := t.trace()
	return action
}

// Trace is FindAction that also returns the condition ids it visited.
func (t *Tree[A]) Trace() (A, []NodeID) {
	return t.trace()
}

func (t *Tree[A]) trace() (A, []NodeID) {
	var path []NodeID
	n := &t.nodes[t.root]
	for {
		path = append(path, n.id)
		b := n.branches[0]
		if n.predicate() {
			b = n.branches[1]
		}
		if b.leaf {
			return b.action, path
		}
		n = &t.nodes[t.index[b.next]]
	}
}

// Root returns the id of the root condition.
func (t *Tree[A]) Root() NodeID { return t.nodes[t.root].id }

// Len returns the number of condition nodes.
func (t *Tree[A]) Len() int { return len(t.nodes) }

// Builder assembles a Tree from conditions registered under explicit ids.
//
//	b := ai.NewBuilder[Action]()
//	b.Condition("alone", isAlone, b.Goto("distracted"), b.Do(rampage))
//	tree, err := b.Build("alone")
type Builder[A any] struct {
	nodes []condition[A]
	index map[NodeID]int
	errs  []error
}

// NewBuilder creates an empty builder.
func NewBuilder[A any]() *Builder[A] {
	return &Builder[A]{index: make(map[NodeID]int)}
}

// Goto makes a branch that continues at the condition registered under id.
func (b *Builder[A]) Goto(id NodeID) Branch[A] {
	return Branch[A]{next: id}
}

// Do makes a terminal branch returning action.
func (b *Builder[A]) Do(action A) Branch[A] {
	return Branch[A]{action: action, leaf: true}
}

// Condition registers a condition node. Branch order matches the data
// layout of the decision tables: the false branch first.
func (b *Builder[A]) Condition(id NodeID, p Predicate, onFalse, onTrue Branch[A]) *Builder[A] {
	if _, dup := b.index[id]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate condition %q", id))
		return b
	}
	if p == nil {
		b.errs = append(b.errs, fmt.Errorf("condition %q has no predicate", id))
	}
	b.index[id] = len(b.nodes)
	b.nodes = append(b.nodes, condition[A]{
		id:        id,
		predicate: p,
		branches:  [2]Branch[A]{onFalse, onTrue},
	})
	return b
}

// Build validates the graph and returns a tree rooted at root.
func (b *Builder[A]) Build(root NodeID) (*Tree[A], error) {
	if len(b.nodes) == 0 {
		return nil, fmt.Errorf("%w: no conditions", ErrMalformedTree)
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformedTree, errors.Join(b.errs...))
	}
	rootIdx, ok := b.index[root]
	if !ok {
		return nil, fmt.Errorf("%w: unknown root %q", ErrMalformedTree, root)
	}
	for _, n := range b.nodes {
		for _, br := range n.branches {
			if br.leaf {
				continue
			}
			if _, ok := b.index[br.next]; !ok {
				return nil, fmt.Errorf("%w: condition %q references unknown %q", ErrMalformedTree, n.id, br.next)
			}
		}
	}

	// every node reachable from root, and no node reachable from itself
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(b.nodes))
	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case visiting:
			return fmt.Errorf("%w: cycle through %q", ErrMalformedTree, b.nodes[i].id)
		case done:
			return nil
		}
		state[i] = visiting
		for _, br := range b.nodes[i].branches {
			if br.leaf {
				continue
			}
			if err := visit(b.index[br.next]); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}
	if err := visit(rootIdx); err != nil {
		return nil, err
	}
	for i, s := range state {
		if s != done {
			return nil, fmt.Errorf("%w: condition %q unreachable from %q", ErrMalformedTree, b.nodes[i].id, root)
		}
	}

	nodes := make([]condition[A], len(b.nodes))
	copy(nodes, b.nodes)
	index := make(map[NodeID]int, len(b.index))
	for k, v := range b.index {
		index[k] = v
	}
	return &Tree[A]{root: rootIdx, nodes: nodes, index: index}, nil
}
