package cache

import "time"

// RenderKeyOpts identifies one still image of a scene.
type RenderKeyOpts struct {
	Param     float64 `json:"param"`
	Format    string  `json:"format"`
	TextWidth int     `json:"text_width,omitempty"`
	Policy    string  `json:"policy,omitempty"`
}

// FrameKeyOpts identifies one frame of an animation.
type FrameKeyOpts struct {
	Index  int     `json:"index"`
	Param  float64 `json:"param"`
	Frames int     `json:"frames"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
}

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey is the key of a rendered still image.
	RenderKey(sceneHash string, opts RenderKeyOpts) string
	// FrameKey is the key of one encoded animation frame.
	FrameKey(sceneHash string, opts FrameKeyOpts) string
}

// DefaultKeyer hashes scene hash and options into "render:<hex>" and
// "frame:<hex>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey implements Keyer.
func (DefaultKeyer) RenderKey(sceneHash string, opts RenderKeyOpts) string {
	return hashKey("render", sceneHash, opts)
}

// FrameKey implements Keyer.
func (DefaultKeyer) FrameKey(sceneHash string, opts FrameKeyOpts) string {
	return hashKey("frame", sceneHash, opts)
}

// Entry lifetimes. Renders are pure functions of scene and options, so
// entries only expire to bound storage.
const (
	TTLRender = 7 * 24 * time.Hour
	TTLFrame  = 24 * time.Hour
)
