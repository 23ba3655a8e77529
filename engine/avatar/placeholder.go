package avatar

import "github.com/Carmen-Shannon/oxy-astronaut/common"

// PlaceholderName is the asset name reported by the procedural stand-in.
const PlaceholderName = "placeholder:astronaut"

// placeholderParts are the primitive pieces the stand-in astronaut is assembled from.
var placeholderParts = []string{
	"body",
	"helmet",
	"visor",
	"backpack",
	"arm_left",
	"arm_right",
	"leg_left",
	"leg_right",
}

type placeholderAsset struct{}

var _ common.Asset = placeholderAsset{}

// PlaceholderAsset returns the procedural astronaut used when no candidate asset loads.
// It has no animation.
//
// Returns:
//   - common.Asset: the stand-in asset
func PlaceholderAsset() common.Asset {
	return placeholderAsset{}
}

// NewPlaceholder creates an avatar built from the procedural stand-in asset.
//
// Parameters:
//   - options: functional options applied after the placeholder asset
//
// Returns:
//   - Avatar: the placeholder avatar
func NewPlaceholder(options ...AvatarBuilderOption) Avatar {
	return NewAvatar(options...)
}

func (placeholderAsset) Name() string {
	return PlaceholderName
}

func (placeholderAsset) HasAnimation() bool {
	return false
}

func (placeholderAsset) ListMeshes() []string {
	out := make([]string, len(placeholderParts))
	copy(out, placeholderParts)
	return out
}
