package spring

// Set is the group of springs driving one hand.
type Set struct {
	Camera   Camera
	Movement Movement
	Sprint   Sprint
	Jump     Jump
}

// NewSet returns a set at rest.
func NewSet() Set {
	return Set{Jump: NewJump()}
}

func (s *Set) Reset() {
	*s = NewSet()
}
