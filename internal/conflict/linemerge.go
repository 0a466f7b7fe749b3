package conflict

import "strings"

const (
	markerOpen      = "<<<<<<<"
	markerSeparator = "======="
	markerClose     = ">>>>>>>"
)

// Markers labels the two sides of a conflict block
type Markers struct {
	LabelA string
	LabelB string
}

// Open returns the line that starts a conflict block
func (m Markers) Open() string {
	return markerOpen + " " + m.LabelA + "\n"
}

// Separator returns the line between the two sides of a conflict block
func (m Markers) Separator() string {
	return markerSeparator + "\n"
}

// Close returns the line that ends a conflict block
func (m Markers) Close() string {
	return markerClose + " " + m.LabelB + "\n"
}

// slot is the line at one index of one version; present is false past the
// end of that version.
type slot struct {
	text    string
	present bool
}

func at(lines Lines, i int) slot {
	if i >= len(lines) {
		return slot{}
	}
	return slot{text: strings.TrimSuffix(lines[i], "\n"), present: true}
}

// emit renders a slot as an output line; an absent slot renders nothing
func (s slot) emit(out Lines) Lines {
	if !s.present {
		return out
	}
	return append(out, s.text+"\n")
}

// MergeLines performs a positional three-way merge of base, a and b.
//
// Lines are compared strictly by index with no re-alignment, so an insertion
// in one version shifts every later line and conflicts against the others.
// Every emitted line ends in "\n". When a and b disagree with base and with
// each other, a conflict block is emitted and hasConflict is true.
func MergeLines(base, a, b Lines, m Markers) (hasConflict bool, merged Lines) {
	n := max(len(base), len(a), len(b))
	merged = make(Lines, 0, n)

	for i := 0; i < n; i++ {
		baseLine, aLine, bLine := at(base, i), at(a, i), at(b, i)

		switch {
		case aLine == baseLine && bLine == baseLine:
			merged = baseLine.emit(merged)
		case aLine != baseLine && bLine == baseLine:
			merged = aLine.emit(merged)
		case aLine == baseLine && bLine != baseLine:
			merged = bLine.emit(merged)
		case aLine == bLine:
			merged = aLine.emit(merged)
		default:
			hasConflict = true
			merged = append(merged, m.Open())
			merged = aLine.emit(merged)
			merged = append(merged, m.Separator())
			merged = bLine.emit(merged)
			merged = append(merged, m.Close())
		}
	}

	return hasConflict, merged
}
