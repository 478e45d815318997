package crop

// Handle identifies one of the eight crop handles: four corners and four
// edge midpoints.
type Handle uint8

const (
	HandleNone Handle = iota
	HandleTopLeft
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

// edgeSet names which rect edges a handle moves; the same set names the
// viewport margins edge push considers for that handle.
type edgeSet struct {
	left, top, right, bottom bool
}

// handleEdges maps each handle to its edge set, indexed by Handle.
var handleEdges = [...]edgeSet{
	HandleNone:        {},
	HandleTopLeft:     {left: true, top: true},
	HandleTop:         {top: true},
	HandleTopRight:    {top: true, right: true},
	HandleRight:       {right: true},
	HandleBottomRight: {right: true, bottom: true},
	HandleBottom:      {bottom: true},
	HandleBottomLeft:  {bottom: true, left: true},
	HandleLeft:        {left: true},
}

// Valid reports whether h names an actual handle.
func (h Handle) Valid() bool {
	return h > HandleNone && int(h) < len(handleEdges)
}

func (h Handle) edges() edgeSet {
	if !h.Valid() {
		return edgeSet{}
	}
	return handleEdges[h]
}

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeft:
		return "left"
	}
	return "none"
}
