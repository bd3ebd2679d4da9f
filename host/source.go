package host

// SourceType classifies what a registered source is.
type SourceType int

const (
	SourceTypeInput SourceType = iota
	SourceTypeFilter
	SourceTypeTransition
)

func (t SourceType) String() string {
	switch t {
	case SourceTypeInput:
		return "input"
	case SourceTypeFilter:
		return "filter"
	case SourceTypeTransition:
		return "transition"
	default:
		return "unknown"
	}
}

// OutputFlags describes what a source produces.
type OutputFlags uint32

const (
	OutputVideo OutputFlags = 1 << iota
	OutputAudio
)

// ColorFormat is the render target format requested by a filter.
type ColorFormat int

const (
	ColorFormatUnknown ColorFormat = iota
	ColorFormatRGBA
)

// RenderMode tells the host whether the filter may draw the upstream
// source directly instead of through an intermediate texture.
type RenderMode int

const (
	NoDirectRendering RenderMode = iota
	AllowDirectRendering
)

// Source is a video source with a native size.
type Source interface {
	BaseWidth() uint32
	BaseHeight() uint32
}

// FilterContext is the host side of one filter attachment. A filter
// holds it as a non-owning reference.
type FilterContext interface {
	// ProcessFilterBegin acquires the render target for this frame.
	// It returns false when the target is not ready.
	ProcessFilterBegin(format ColorFormat, mode RenderMode) bool
	// ProcessFilterEnd draws the upstream frame through effect using its
	// default technique. A zero width or height sizes to the target.
	ProcessFilterEnd(effect Effect, width, height uint32)
	// SkipVideoFilter makes the host use the unmodified upstream frame.
	SkipVideoFilter()
	// FilterTarget returns the upstream source this filter processes.
	FilterTarget() Source
}

// Instance is the opaque per-source state returned by SourceInfo.Create.
type Instance any

// SourceInfo is the registration descriptor of a source type.
type SourceInfo struct {
	ID          string
	Type        SourceType
	OutputFlags OutputFlags

	GetName func() string
	// Create returns nil when the instance could not be created.
	Create        func(settings Data, ctx FilterContext) Instance
	Destroy       func(data Instance)
	Update        func(data Instance, settings Data)
	GetDefaults   func(settings Data)
	GetProperties func(data Instance) *Properties
	VideoRender   func(data Instance)
}
