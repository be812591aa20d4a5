package settings

import "github.com/go-gl/mathgl/mgl32"

// Bundle holds every per-category tuning value the springs read. A Bundle handed to the
// engine is treated as immutable: edits produce a new Bundle and a settings version bump.
type Bundle struct {
	Enabled bool `json:"enabled"`

	// Camera spring.
	Stiffness         float32 `json:"stiffness"`
	Damping           float32 `json:"damping"`
	MaxOffset         float32 `json:"maxOffset"`
	MaxRotation       float32 `json:"maxRotation"` // degrees
	Mass              float32 `json:"mass"`
	PitchMultiplier   float32 `json:"pitchMultiplier"`
	RollMultiplier    float32 `json:"rollMultiplier"`
	CameraPitchMult   float32 `json:"cameraPitchMult"`
	InvertCameraPitch bool    `json:"invertCameraPitch"`
	InvertCameraYaw   bool    `json:"invertCameraYaw"`
	PivotPoint        Pivot   `json:"pivotPoint"`

	// Movement spring.
	MovementInertiaEnabled    bool    `json:"movementInertiaEnabled"`
	MovementStiffness         float32 `json:"movementStiffness"`
	MovementDamping           float32 `json:"movementDamping"`
	MovementMaxOffset         float32 `json:"movementMaxOffset"`
	MovementMaxRotation       float32 `json:"movementMaxRotation"` // degrees
	MovementLeftMult          float32 `json:"movementLeftMult"`
	MovementRightMult         float32 `json:"movementRightMult"`
	MovementForwardMult       float32 `json:"movementForwardMult"`
	MovementBackwardMult      float32 `json:"movementBackwardMult"`
	InvertMovementLateral     bool    `json:"invertMovementLateral"`
	InvertMovementForwardBack bool    `json:"invertMovementForwardBack"`

	SimultaneousThreshold    float32 `json:"simultaneousThreshold"`
	SimultaneousCameraMult   float32 `json:"simultaneousCameraMult"`
	SimultaneousMovementMult float32 `json:"simultaneousMovementMult"`

	// Sprint spring.
	SprintInertiaEnabled   bool    `json:"sprintInertiaEnabled"`
	SprintImpulseY         float32 `json:"sprintImpulseY"`
	SprintImpulseZ         float32 `json:"sprintImpulseZ"`
	SprintRotImpulse       float32 `json:"sprintRotImpulse"` // degrees
	SprintImpulseBlendTime float32 `json:"sprintImpulseBlendTime"`
	SprintStiffness        float32 `json:"sprintStiffness"`
	SprintDamping          float32 `json:"sprintDamping"`

	// Jump spring.
	JumpInertiaEnabled   bool    `json:"jumpInertiaEnabled"`
	CameraInertiaAirMult float32 `json:"cameraInertiaAirMult"`
	JumpImpulseY         float32 `json:"jumpImpulseY"`
	JumpImpulseZ         float32 `json:"jumpImpulseZ"`
	JumpRotImpulse       float32 `json:"jumpRotImpulse"` // degrees
	FallImpulseY         float32 `json:"fallImpulseY"`
	FallImpulseZ         float32 `json:"fallImpulseZ"`
	FallRotImpulse       float32 `json:"fallRotImpulse"` // degrees
	JumpStiffness        float32 `json:"jumpStiffness"`
	JumpDamping          float32 `json:"jumpDamping"`
	LandImpulseY         float32 `json:"landImpulseY"`
	LandImpulseZ         float32 `json:"landImpulseZ"`
	LandRotImpulse       float32 `json:"landRotImpulse"` // degrees
	LandStiffness        float32 `json:"landStiffness"`
	LandDamping          float32 `json:"landDamping"`
	AirTimeImpulseScale  float32 `json:"airTimeImpulseScale"`

	EnableStanceMultipliers bool                 `json:"enableStanceMultipliers"`
	StanceMultipliers       [StanceCount]float32 `json:"stanceMultipliers"`
	StanceInvertCamera      [StanceCount]bool    `json:"stanceInvertCamera"`
	StanceInvertMovement    [StanceCount]bool    `json:"stanceInvertMovement"`
}

// DefaultBundle returns the built-in bundle used when no preset matches.
func DefaultBundle() Bundle {
	return Bundle{
		Enabled: true,

		Stiffness:       150,
		Damping:         12,
		MaxOffset:       8,
		MaxRotation:     15,
		Mass:            1,
		PitchMultiplier: 1,
		RollMultiplier:  1,
		CameraPitchMult: 1,
		PivotPoint:      PivotChest,

		MovementInertiaEnabled: true,
		MovementStiffness:      80,
		MovementDamping:        6,
		MovementMaxOffset:      12,
		MovementMaxRotation:    20,
		MovementLeftMult:       1,
		MovementRightMult:      1,
		MovementForwardMult:    0.5,
		MovementBackwardMult:   0.5,

		SimultaneousThreshold:    0.5,
		SimultaneousCameraMult:   1,
		SimultaneousMovementMult: 1,

		SprintImpulseY:         8,
		SprintImpulseZ:         3,
		SprintRotImpulse:       5,
		SprintImpulseBlendTime: 0.1,
		SprintStiffness:        60,
		SprintDamping:          5,

		JumpInertiaEnabled:   true,
		CameraInertiaAirMult: 0.3,
		JumpImpulseY:         4,
		JumpImpulseZ:         6,
		JumpRotImpulse:       3,
		FallImpulseY:         2,
		FallImpulseZ:         3,
		FallRotImpulse:       1.5,
		JumpStiffness:        40,
		JumpDamping:          3,
		LandImpulseY:         3,
		LandImpulseZ:         10,
		LandRotImpulse:       5,
		LandStiffness:        120,
		LandDamping:          10,
		AirTimeImpulseScale:  1.5,

		StanceMultipliers: [StanceCount]float32{1, 1, 1, 1},
	}
}

// MaxRotationRad returns the camera rotation limit in radians.
func (b *Bundle) MaxRotationRad() float32 {
	return mgl32.DegToRad(b.MaxRotation)
}

// MovementMaxRotationRad returns the movement rotation limit in radians.
func (b *Bundle) MovementMaxRotationRad() float32 {
	return mgl32.DegToRad(b.MovementMaxRotation)
}

// StanceMultiplier returns the intensity multiplier and invert overrides for stance. Stances
// outside the known range, or a bundle with stance multipliers disabled, yield (1, false, false).
func (b *Bundle) StanceMultiplier(stance Stance) (mult float32, invertCamera, invertMovement bool) {
	if !b.EnableStanceMultipliers || !stance.Valid() {
		return 1, false, false
	}
	return b.StanceMultipliers[stance], b.StanceInvertCamera[stance], b.StanceInvertMovement[stance]
}

// Sanitize repairs values that would break integration: non-positive mass, negative
// stiffness or damping, and out of range pivots.
func (b *Bundle) Sanitize() {
	if b.Mass <= 0 {
		b.Mass = 1
	}
	for _, f := range []*float32{
		&b.Stiffness, &b.Damping, &b.MovementStiffness, &b.MovementDamping,
		&b.SprintStiffness, &b.SprintDamping, &b.JumpStiffness, &b.JumpDamping,
		&b.LandStiffness, &b.LandDamping, &b.MaxOffset, &b.MaxRotation,
		&b.MovementMaxOffset, &b.MovementMaxRotation, &b.SprintImpulseBlendTime,
	} {
		*f = max(*f, 0)
	}
	if !b.PivotPoint.Valid() {
		b.PivotPoint = PivotChest
	}
}
