// Package paddle provides the debounced logical view of the two keyer
// paddles.
package paddle

import "fmt"

// Line identifies one of the two paddles.
type Line int

// The two paddles of an iambic key.
const (
	DitLine Line = iota
	DahLine
)

func (l Line) String() string {
	switch l {
	case DitLine:
		return "dit"
	case DahLine:
		return "dah"
	default:
		return fmt.Sprintf("Line(%d)", int(l))
	}
}

// ParseLine converts a paddle name into a Line.
func ParseLine(name string) (Line, error) {
	switch name {
	case "dit", "dot":
		return DitLine, nil
	case "dah", "dash":
		return DahLine, nil
	default:
		return 0, fmt.Errorf("unknown paddle %q", name)
	}
}

// PaddleState is the pressed state of the two paddles at one moment.
type PaddleState struct {
	Dit bool
	Dah bool
}

// Both tells if the paddles are squeezed.
func (p PaddleState) Both() bool {
	return p.Dit && p.Dah
}

// None tells if both paddles are released.
func (p PaddleState) None() bool {
	return !p.Dit && !p.Dah
}

func (p PaddleState) String() string {
	switch {
	case p.Both():
		return "squeeze"
	case p.Dit:
		return "dit"
	case p.Dah:
		return "dah"
	default:
		return "none"
	}
}
