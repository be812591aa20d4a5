package game

const (
	// SubstepInterval is the longest integration step a spring may take.
	SubstepInterval = float32(0.016)
	MaxSubsteps     = 4

	MaxCameraVelocity     = float32(25)
	MaxCameraAcceleration = float32(50)
	CameraMovingThreshold = float32(0.1)

	MovementInputScale     = float32(200)
	MovementSmoothing      = float32(0.3)
	MovementReferenceSpeed = float32(200)

	LandingCooldown = float32(0.25)

	MinTickDelta = float32(0.005)
	MaxTickDelta = float32(0.1)

	// EquipBlendMaxDelta caps the delta used for blend ramps so a hitch does not snap a blend.
	EquipBlendMaxDelta = float32(0.05)

	NegligiblePosition = float32(0.01)
	NegligibleRotation = float32(0.0001)

	// SpringRotationLimit bounds sprint and jump rotation offsets (~45 degrees).
	SpringRotationLimit = float32(0.785)
)
