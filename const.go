package flatfield

const (
	defaultSignalThreshold = 2048
	defaultReferenceRows   = 15
	defaultReferenceCols   = 50
)

const (
	thicknessScale    = 25.0
	thicknessSentinel = 10.0
)
