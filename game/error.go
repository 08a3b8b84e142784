package game

const (
	ErrorDepthExceeded = "Error: Transition depth limit reached."
	ErrorNoCell        = "Error: Transition has no starting cell."
	ErrorNilObject     = "Error: Transition has no object to move."
	ErrorNoSpheres     = "Error: Transition has no bounding spheres."
	ErrorPanicked      = "Error: Transition panicked while resolving."
	ErrorRegionClosed  = "Error: Region is no longer accepting requests."

	ErrorInternalOutOfOrderRelease = "Error: Transition at depth %d released while depth is %d."
	ErrorInternalTooManySpheres    = "Error: Path supports at most %d spheres, got %d."
)
