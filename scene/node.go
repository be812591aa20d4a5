package scene

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a similarity transform: rotate, then scale uniformly, then translate.
type Transform struct {
	Translate mgl32.Vec3
	Rotate    mgl32.Mat3
	Scale     float32
}

// IdentityTransform returns the transform that leaves points untouched.
func IdentityTransform() Transform {
	return Transform{Rotate: mgl32.Ident3(), Scale: 1}
}

// Compose returns the transform of a child with local transform l under parent t.
func (t Transform) Compose(l Transform) Transform {
	return Transform{
		Translate: t.Translate.Add(t.Rotate.Mul3x1(l.Translate.Mul(t.Scale))),
		Rotate:    t.Rotate.Mul3(l.Rotate),
		Scale:     t.Scale * l.Scale,
	}
}

// Node is the narrow view of a host scene-graph node the engine needs.
type Node interface {
	Name() string
	Children() []Node
	// LocalTransform returns the node's transform relative to its parent.
	LocalTransform() Transform
	SetLocalTransform(Transform)
	// UpdateWorld recomputes this node's world transform from its parent's world transform
	// and its local transform. It must not recurse.
	UpdateWorld()
}

// FindNode returns the first node named name in a depth-first walk from root, or nil.
func FindNode(root Node, name string) Node {
	if root == nil {
		return nil
	}
	if root.Name() == name {
		return root
	}
	for _, child := range root.Children() {
		if n := FindNode(child, name); n != nil {
			return n
		}
	}
	return nil
}

// FindFirst returns the first of names that exists below root.
func FindFirst(root Node, names ...string) Node {
	for _, name := range names {
		if n := FindNode(root, name); n != nil {
			return n
		}
	}
	return nil
}

const (
	effectsContainer = "MagicEffectsNode"
	particleMarker   = "Particle"
	emitterSuffix    = "-Emitter"
)

// SkipPropagation reports whether a node is owned by the host's effect systems and must keep
// the world transform the host gave it.
func SkipPropagation(name string) bool {
	return name == effectsContainer ||
		strings.Contains(name, particleMarker) ||
		(len(name) > len(emitterSuffix) && strings.HasSuffix(name, emitterSuffix))
}

// PropagateSelective updates the world transform of node and, depth first, of every
// descendant except effect nodes. A skipped node's subtree is skipped with it.
func PropagateSelective(node Node) int {
	if node == nil {
		return 0
	}
	node.UpdateWorld()
	updated := 1
	for _, child := range node.Children() {
		if child == nil || SkipPropagation(child.Name()) {
			continue
		}
		updated += PropagateSelective(child)
	}
	return updated
}
