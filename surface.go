package glx

// Context types understood by browser canvases, in decreasing capability.
const (
	ContextWebGL2            = "webgl2"
	ContextWebGL             = "webgl"
	ContextExperimentalWebGL = "experimental-webgl"
)

// Surface is a drawing surface that hands out rendering contexts.
//
// GetContext returns (nil, nil) when the surface does not support
// contextType, mirroring a canvas returning null. An error means the
// attempt itself failed; NewContext treats both as "try the next type".
type Surface interface {
	GetContext(contextType string, attrs Attributes) (Device, error)
}

// PowerPreference hints which GPU the platform should pick.
type PowerPreference string

const (
	PowerDefault         PowerPreference = "default"
	PowerLow             PowerPreference = "low-power"
	PowerHighPerformance PowerPreference = "high-performance"
)

// Attributes are context creation attributes. Backends translate them to
// their native form (a WebGL attribute object, GLFW window hints) and
// ignore the ones they cannot express.
//
// The zero value turns every feature off; start from DefaultAttributes
// to get the platform defaults.
type Attributes struct {
	Alpha                        bool
	Depth                        bool
	Stencil                      bool
	Antialias                    bool
	PremultipliedAlpha           bool
	PreserveDrawingBuffer        bool
	FailIfMajorPerformanceCaveat bool
	Desynchronized               bool
	PowerPreference              PowerPreference
}

// DefaultAttributes returns the WebGL default attributes with
// antialiasing enabled.
func DefaultAttributes() Attributes {
	return Attributes{
		Alpha:              true,
		Depth:              true,
		Antialias:          true,
		PremultipliedAlpha: true,
		PowerPreference:    PowerDefault,
	}
}

// Config selects which contexts NewContext asks the surface for.
type Config struct {
	// Types lists acceptable context types in preference order.
	Types []string

	// Attributes are passed unchanged to every GetContext attempt.
	Attributes Attributes
}

// DefaultConfig returns the browser fallback chain (webgl2, webgl,
// experimental-webgl) with DefaultAttributes.
//
// NewContext does not apply defaults on its own; composition roots call
// DefaultConfig and adjust the result.
func DefaultConfig() Config {
	return Config{
		Types:      []string{ContextWebGL2, ContextWebGL, ContextExperimentalWebGL},
		Attributes: DefaultAttributes(),
	}
}
