// Package sound plays short synthesized tones for game feedback.
//
// The Manager mixes tones into a single beep speaker stream. Audio is
// optional: if the speaker cannot be opened the manager stays silent
// and every Play call is a no-op.
package sound
