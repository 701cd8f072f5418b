package dom

// Command is a reversible tree edit.
type Command interface {
	// Execute applies the edit and reports whether it succeeded.
	Execute() bool
	// Undo reverts a successful Execute. It returns false if there is
	// nothing to revert.
	Undo() bool
}

// AddChildCommand appends child to parent. Undo restores the child's
// previous position, including a previous parent.
type AddChildCommand struct {
	parent *Node
	child  *Node

	executed   bool
	index      int
	prevParent *Node
	prevIndex  int
}

// NewAddChildCommand creates a command that appends child to parent.
func NewAddChildCommand(parent, child *Node) *AddChildCommand {
	return &AddChildCommand{parent: parent, child: child}
}

// Index returns the position the child was inserted at by the last Execute.
func (c *AddChildCommand) Index() int {
	return c.index
}

// Execute fails if child is already a child of parent or cannot be inserted.
func (c *AddChildCommand) Execute() bool {
	if c.executed || c.child == nil || c.parent.IndexOf(c.child) >= 0 {
		return false
	}
	prevParent := c.child.parent
	prevIndex := -1
	if prevParent != nil {
		prevIndex = prevParent.IndexOf(c.child)
	}
	if err := c.parent.AppendChild(c.child); err != nil {
		return false
	}
	c.prevParent, c.prevIndex = prevParent, prevIndex
	c.index = c.parent.IndexOf(c.child)
	c.executed = true
	return true
}

// Undo fails without touching the tree if the child can no longer go back
// to where it was.
func (c *AddChildCommand) Undo() bool {
	if !c.executed || c.parent.ChildAt(c.index) != c.child {
		return false
	}
	if c.prevParent == nil {
		c.parent.detach(c.child)
		c.executed = false
		return true
	}
	if c.prevIndex > c.prevParent.ChildCount() || c.child.Contains(c.prevParent) {
		return false
	}
	// InsertChildAt detaches from c.parent only once the insertion is valid.
	if err := c.prevParent.InsertChildAt(c.prevIndex, c.child); err != nil {
		return false
	}
	c.executed = false
	return true
}

// RemoveChildCommand removes child from parent. Undo reinserts it at the
// index it had.
type RemoveChildCommand struct {
	parent *Node
	child  *Node

	executed bool
	index    int
}

// NewRemoveChildCommand creates a command that removes child from parent.
func NewRemoveChildCommand(parent, child *Node) *RemoveChildCommand {
	return &RemoveChildCommand{parent: parent, child: child}
}

// Index returns the position the child was removed from by the last Execute.
func (c *RemoveChildCommand) Index() int {
	return c.index
}

// Execute fails if child is not a child of parent.
func (c *RemoveChildCommand) Execute() bool {
	if c.executed {
		return false
	}
	index := c.parent.IndexOf(c.child)
	if index < 0 {
		return false
	}
	c.parent.detach(c.child)
	c.index = index
	c.executed = true
	return true
}

func (c *RemoveChildCommand) Undo() bool {
	if !c.executed {
		return false
	}
	if err := c.parent.InsertChildAt(c.index, c.child); err != nil {
		return false
	}
	c.executed = false
	return true
}

// CommandHistory is a linear undo/redo log. cursor is the index of the last
// applied command, -1 when nothing is applied.
type CommandHistory struct {
	commands []Command
	cursor   int
}

// NewCommandHistory creates an empty history.
func NewCommandHistory() *CommandHistory {
	return &CommandHistory{cursor: -1}
}

// Execute runs cmd. On success any redo-able commands are discarded and cmd
// becomes the latest entry; on failure the history is unchanged.
func (h *CommandHistory) Execute(cmd Command) bool {
	if !cmd.Execute() {
		return false
	}
	h.commands = append(h.commands[:h.cursor+1], cmd)
	h.cursor++
	return true
}

// Undo reverts the latest applied command.
func (h *CommandHistory) Undo() bool {
	if h.cursor < 0 {
		return false
	}
	if !h.commands[h.cursor].Undo() {
		return false
	}
	h.cursor--
	return true
}

// Redo reapplies the command right after the cursor.
func (h *CommandHistory) Redo() bool {
	if h.cursor+1 >= len(h.commands) {
		return false
	}
	if !h.commands[h.cursor+1].Execute() {
		return false
	}
	h.cursor++
	return true
}

// CanUndo returns true if there is an applied command.
func (h *CommandHistory) CanUndo() bool {
	return h.cursor >= 0
}

// CanRedo returns true if there is an undone command to reapply.
func (h *CommandHistory) CanRedo() bool {
	return h.cursor+1 < len(h.commands)
}

// Len returns the number of recorded commands, including undone ones.
func (h *CommandHistory) Len() int {
	return len(h.commands)
}

// History returns the node's own command history, creating it on first use.
func (n *Node) History() *CommandHistory {
	if n.history == nil {
		n.history = NewCommandHistory()
	}
	return n.history
}

// Execute runs cmd through the node's history.
func (n *Node) Execute(cmd Command) bool {
	return n.History().Execute(cmd)
}

// Undo reverts the latest command in the node's history.
func (n *Node) Undo() bool {
	return n.History().Undo()
}

// Redo reapplies the latest undone command in the node's history.
func (n *Node) Redo() bool {
	return n.History().Redo()
}
