package scene

// MemNode is an in-memory Node used by the simulation harness and by tests.
type MemNode struct {
	name     string
	parent   *MemNode
	children []*MemNode

	local Transform
	world Transform

	// WorldUpdates counts UpdateWorld calls.
	WorldUpdates int
}

// NewMemNode returns a detached node with identity transforms.
func NewMemNode(name string) *MemNode {
	return &MemNode{name: name, local: IdentityTransform(), world: IdentityTransform()}
}

// Attach appends child to n and returns child.
func (n *MemNode) Attach(child *MemNode) *MemNode {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// AttachNew creates a node named name under n.
func (n *MemNode) AttachNew(name string) *MemNode {
	return n.Attach(NewMemNode(name))
}

func (n *MemNode) Name() string {
	return n.name
}

func (n *MemNode) Children() []Node {
	out := make([]Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *MemNode) LocalTransform() Transform {
	return n.local
}

func (n *MemNode) SetLocalTransform(t Transform) {
	n.local = t
}

// WorldTransform returns the world transform as of the last UpdateWorld.
func (n *MemNode) WorldTransform() Transform {
	return n.world
}

func (n *MemNode) UpdateWorld() {
	n.WorldUpdates++
	if n.parent == nil {
		n.world = n.local
		return
	}
	n.world = n.parent.world.Compose(n.local)
}

// UpdateAll recomputes world transforms of the whole subtree, as the host's own update would.
func (n *MemNode) UpdateAll() {
	n.UpdateWorld()
	for _, c := range n.children {
		c.UpdateAll()
	}
}
