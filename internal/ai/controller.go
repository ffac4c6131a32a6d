package ai

import (
	"log/slog"
	"sync/atomic"
)

// Controller drives one combatant's decisions through its behavior tree.
type Controller[A any] struct {
	ownerID   uint32
	owner     string
	tree      *Tree[A]
	decisions atomic.Int32
}

// NewController creates a controller for the combatant ownerID.
func NewController[A any](ownerID uint32, owner string, tree *Tree[A]) *Controller[A] {
	return &Controller[A]{
		ownerID: ownerID,
		owner:   owner,
		tree:    tree,
	}
}

// Decide evaluates the tree once and returns the selected action.
func (c *Controller[A]) Decide() A {
	c.decisions.Add(1)

	if !IsDebugEnabled() {
		return c.tree.FindAction()
	}

	action, path := c.tree.Trace()
	slog.Debug("AI decision",
		"combatant", c.owner,
		"objectID", c.ownerID,
		"path", path,
		"decision", c.decisions.Load())
	return action
}

// Decisions returns how many times Decide was called.
func (c *Controller[A]) Decisions() int32 {
	return c.decisions.Load()
}

// Tree returns the underlying tree.
func (c *Controller[A]) Tree() *Tree[A] { return c.tree }
