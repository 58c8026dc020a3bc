package ir

// Position is the source range an IR record was lowered from.
//
// The column range is derived from the offset delta, not measured: for a
// record spanning several lines ColumnEnd is not a visual column.
type Position struct {
	Line        int
	ColumnStart int
	ColumnEnd   int
	OffsetStart int
	OffsetEnd   int
}

// NewPosition builds a Position from a start point and an end offset.
func NewPosition(line, column, offsetStart, offsetEnd int) Position {
	return Position{
		Line:        line,
		ColumnStart: column,
		ColumnEnd:   column + (offsetEnd - offsetStart),
		OffsetStart: offsetStart,
		OffsetEnd:   offsetEnd,
	}
}

// Pos returns the position itself, so embedding Position satisfies Node.
func (p Position) Pos() Position { return p }

// Consistent reports whether the column range matches the offset range.
func (p Position) Consistent() bool {
	return p.ColumnEnd-p.ColumnStart == p.OffsetEnd-p.OffsetStart
}

// Node is implemented by every positioned IR record.
type Node interface {
	Pos() Position
	irNode()
}

func (*Modifiers) irNode()       {}
func (*Signature) irNode()       {}
func (*ThrownException) irNode() {}
func (*HandleInfo) irNode()      {}
func (*Annotation) irNode()      {}
func (*AnnoArg) irNode()         {}
func (*Constant) irNode()        {}
