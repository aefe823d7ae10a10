package core

import "github.com/chewxy/math32"

const (
	// Pi in float32, matching the constant the generated shaders use
	Pi float32 = math32.Pi

	// TwoPi is a full turn in radians
	TwoPi float32 = 2 * math32.Pi
)

// DegToRad converts an angle from degrees to radians
func DegToRad(deg float32) float32 {
	return deg / 360 * TwoPi
}

// RadToDeg converts an angle from radians to degrees
func RadToDeg(rad float32) float32 {
	return rad / TwoPi * 360
}

// Clamp limits value to [lo, hi]
func Clamp(lo, hi, value float32) float32 {
	return max(lo, min(hi, value))
}

// Basis is an orthonormal camera frame: the forward, up and right
// vectors a generated shader receives as the at/up/right uniforms.
type Basis struct {
	At    Vec3
	Up    Vec3
	Right Vec3
}

// CameraBasis builds the camera frame for a yaw (rotation around +Y,
// measured from +Z towards +X) and a pitch (rotation above the horizon).
// Pitch is clamped to [-90°, 90°].
func CameraBasis(yaw, pitch float32) Basis {
	pitch = Clamp(DegToRad(-90), DegToRad(90), pitch)

	sinX, cosX := math32.Sincos(yaw)
	sinY, cosY := math32.Sincos(pitch)

	at := NewVec3(sinX*cosY, sinY, cosX*cosY)
	up := NewVec3(sinX*-sinY, cosY, cosX*-sinY)
	return Basis{
		At:    at,
		Up:    up,
		Right: up.Cross(at),
	}
}

// WrapYaw keeps a yaw angle within [0, 2π)
func WrapYaw(yaw float32) float32 {
	yaw = math32.Mod(yaw, TwoPi)
	if yaw < 0 {
		yaw += TwoPi
	}
	return yaw
}
