package spritepack

// NewAnimationName is used by the command line when an animation is added
// without a name.
const NewAnimationName = "untitled_anim"

// Animation is a named sequence of sprite indices sharing one frame time.
type Animation struct {
	Name string

	// FrameTime is the number of seconds each frame is shown for.
	FrameTime float32

	// Frames are indices into the sprites of the owning atlas, in playback
	// order.
	Frames []int
}

// FrameRate returns the number of frames per second, or zero if the frame
// time is not positive.
func (a *Animation) FrameRate() float32 {
	if a.FrameTime <= 0 {
		return 0
	}
	return 1 / a.FrameTime
}

// Len returns the number of frames.
func (a *Animation) Len() int {
	return len(a.Frames)
}

// removeFrame drops sprite i from the frames and shifts every later sprite
// index down by one.
func (a *Animation) removeFrame(i int) {
	frames := a.Frames[:0]
	for _, f := range a.Frames {
		switch {
		case f == i:
			continue
		case f > i:
			f--
		}
		frames = append(frames, f)
	}
	a.Frames = frames
}
