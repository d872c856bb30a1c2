package pet

// Animation names the visual state the rendering layer should enter. The
// renderer owns the return to AnimationIdle after ActionResult.DurationMs.
type Animation string

const (
	AnimationIdle     Animation = "idle"
	AnimationHappy    Animation = "happy"
	AnimationThinking Animation = "thinking"
	AnimationEating   Animation = "eating"
	AnimationDrinking Animation = "drinking"
	AnimationPlaying  Animation = "playing"
	AnimationPetting  Animation = "petting"
	AnimationSleeping Animation = "sleeping"
)

// ActionResult is the single output shape for every resolved interaction:
// discrete actions, cooldown deflections, and free-form dialogue alike.
type ActionResult struct {
	Animation   Animation `json:"animation"`
	DisplayText string    `json:"displayText"`
	VoiceText   string    `json:"voiceText"`
	StatDelta   StatDelta `json:"statDelta"`
	DurationMs  int       `json:"durationMs"`
}
