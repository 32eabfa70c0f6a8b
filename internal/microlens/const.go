package microlens

// Defaults and fixed parameters.
const (
	CallCost          = 40 // cost units charged per boundary classification
	MinBoundaryPoints = 10 // boundary samples per side, at least
	MaxLevels         = 1000
	MaxBoundaryPoints = 1 << 20 // boundary samples per side, at most
	Resolution        = 1e-2
	SourceRadius      = 0.05
	ImageSize         = 512
	GIFDelay          = 5 // 100ths of a second per frame
	DebugLabelLevels  = 6 // in debug grids, levels below this get a label
	CirclePoints      = 96
	WindowX           = -1.0
	WindowY           = -2.0
	WindowSize        = 4.0
)
