package bubble

// Command-based undo/redo. A command applies itself when pushed
// ("do as you push"), so add/delete take effect the moment the command
// is created.

// Command is one undoable mutation.
type Command interface {
	Redo()
	Undo()
}

// mergeable lets a continuous drag collapse into a single undo step.
// The top of the undo stack absorbs a newly pushed command of the same
// kind targeting the same item, keeping its own start state and taking
// the newcomer's end state.
type mergeable interface {
	Command
	MergeWith(next Command) bool
}

// History is a linear undo/redo stack.
type History struct {
	done   []Command
	undone []Command
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Push executes cmd and records it. Pushing clears the redo stack. If
// the top command absorbs cmd via merging, no new entry is added.
func (h *History) Push(cmd Command) {
	cmd.Redo()
	h.undone = nil

	if n := len(h.done); n > 0 {
		if m, ok := h.done[n-1].(mergeable); ok && m.MergeWith(cmd) {
			return
		}
	}
	h.done = append(h.done, cmd)
}

// CanUndo reports whether Undo would do anything.
func (h *History) CanUndo() bool { return len(h.done) > 0 }

// CanRedo reports whether Redo would do anything.
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

// Undo reverts the most recent command.
func (h *History) Undo() {
	n := len(h.done)
	if n == 0 {
		return
	}
	cmd := h.done[n-1]
	h.done = h.done[:n-1]
	cmd.Undo()
	h.undone = append(h.undone, cmd)
}

// Redo re-applies the most recently undone command.
func (h *History) Redo() {
	n := len(h.undone)
	if n == 0 {
		return
	}
	cmd := h.undone[n-1]
	h.undone = h.undone[:n-1]
	cmd.Redo()
	h.done = append(h.done, cmd)
}

// Clear drops both stacks without executing anything.
func (h *History) Clear() {
	h.done = nil
	h.undone = nil
}

// Len returns the number of undoable steps.
func (h *History) Len() int { return len(h.done) }

// MoveBubbleCommand drags a bubble between two positions. Consecutive
// moves of the same bubble merge.
type MoveBubbleCommand struct {
	Bubble   *Bubble
	From, To Point
}

func (c *MoveBubbleCommand) Redo() { c.Bubble.SetPos(c.To) }
func (c *MoveBubbleCommand) Undo() { c.Bubble.SetPos(c.From) }

// MergeWith absorbs a following move of the same bubble.
func (c *MoveBubbleCommand) MergeWith(next Command) bool {
	m, ok := next.(*MoveBubbleCommand)
	if !ok || m.Bubble != c.Bubble {
		return false
	}
	c.To = m.To
	return true
}

// ResizeBubbleCommand swaps a bubble's body rectangle. Never merges, so
// a resize between two moves breaks their merge chain.
type ResizeBubbleCommand struct {
	Bubble   *Bubble
	From, To Rect
}

func (c *ResizeBubbleCommand) Redo() { c.Bubble.SetBodyRect(c.To) }
func (c *ResizeBubbleCommand) Undo() { c.Bubble.SetBodyRect(c.From) }

// TextCommand swaps a bubble's text.
type TextCommand struct {
	Bubble        *Bubble
	Before, After string
}

func (c *TextCommand) Redo() { c.Bubble.SetText(c.After) }
func (c *TextCommand) Undo() { c.Bubble.SetText(c.Before) }

// AddBubbleCommand inserts a bubble into the scene.
type AddBubbleCommand struct {
	Scene  *Scene
	Bubble *Bubble
}

func (c *AddBubbleCommand) Redo() { c.Scene.attach(c.Bubble) }
func (c *AddBubbleCommand) Undo() { c.Scene.detach(c.Bubble) }

// DeleteBubbleCommand removes a bubble from the scene.
type DeleteBubbleCommand struct {
	Scene  *Scene
	Bubble *Bubble
}

func (c *DeleteBubbleCommand) Redo() { c.Scene.detach(c.Bubble) }
func (c *DeleteBubbleCommand) Undo() { c.Scene.attach(c.Bubble) }

// MoveMediaCommand drags a media slot. Consecutive moves of the same
// slot merge, mirroring bubble move semantics.
type MoveMediaCommand struct {
	Slot     *MediaSlot
	From, To Point
}

func (c *MoveMediaCommand) Redo() { c.Slot.moveTo(c.To) }
func (c *MoveMediaCommand) Undo() { c.Slot.moveTo(c.From) }

// MergeWith absorbs a following move of the same slot.
func (c *MoveMediaCommand) MergeWith(next Command) bool {
	m, ok := next.(*MoveMediaCommand)
	if !ok || m.Slot != c.Slot {
		return false
	}
	c.To = m.To
	return true
}

// ResizeMediaCommand swaps a media slot's display rectangle. Never
// merges.
type ResizeMediaCommand struct {
	Slot     *MediaSlot
	From, To Rect
}

func (c *ResizeMediaCommand) Redo() { c.Slot.setDisplayRect(c.To) }
func (c *ResizeMediaCommand) Undo() { c.Slot.setDisplayRect(c.From) }
