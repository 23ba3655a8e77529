package telemetry

import "github.com/go-gl/mathgl/mgl32"

// Snapshot is one pose sample streamed to clients as JSON.
type Snapshot struct {
	Tick   uint64  `json:"tick"`
	Time   float64 `json:"time"`
	Mode   string  `json:"mode"`
	Locked bool    `json:"locked"`

	// Avatar is nil until an avatar is installed.
	Avatar *AvatarPose `json:"avatar,omitempty"`
	Camera CameraPose  `json:"camera"`

	// Selected names the last picked celestial body, if any.
	Selected string `json:"selected,omitempty"`

	// Visible lists the celestial bodies inside the camera frustum.
	Visible []string `json:"visible,omitempty"`
}

type AvatarPose struct {
	Asset       string     `json:"asset"`
	Placeholder bool       `json:"placeholder"`
	Position    mgl32.Vec3 `json:"position"`
	Yaw         float32    `json:"yaw"`
}

type CameraPose struct {
	Position mgl32.Vec3 `json:"position"`
	Target   mgl32.Vec3 `json:"target"`
}
