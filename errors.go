package hiertab

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrAmbiguousKey    = errors.New("ambiguous key")
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrUnsupported     = errors.New("not implemented")
	ErrIndexCorruption = errors.New("index corruption")
)

// Axis names one of the two indexes of a Table.
type Axis int

const (
	RowAxis Axis = iota
	ColAxis

	noAxis Axis = -1
)

func (a Axis) String() string {
	switch a {
	case RowAxis:
		return "row"
	case ColAxis:
		return "column"
	default:
		return fmt.Sprintf("invalid axis %d", int(a))
	}
}

type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}

// LookupError reports a Spec that did not resolve to exactly one position.
type LookupError struct {
	Axis    Axis
	Spec    Spec
	Matches int
	Err     error
}

func lookupErr(axis Axis, spec Spec, matches int) error {
	err := ErrKeyNotFound
	if matches > 1 {
		err = ErrAmbiguousKey
	}
	return &LookupError{axis, spec, matches, err}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Error() string {
	if e.Matches > 1 {
		return fmt.Sprintf("%s %s: %v (%d matches)", e.Axis, e.Spec, e.Err, e.Matches)
	}
	return fmt.Sprintf("%s %s: %v", e.Axis, e.Spec, e.Err)
}

// ShapeError reports two structures whose level counts differ.
type ShapeError struct {
	Op    string
	Axis  Axis
	Left  int
	Right int
}

func shapeErr(op string, axis Axis, left, right int) error {
	return &ShapeError{op, axis, left, right}
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

func (e *ShapeError) Error() string {
	if e.Axis == noAxis {
		return fmt.Sprintf("%s: %v: levels %d vs %d", e.Op, ErrShapeMismatch, e.Left, e.Right)
	}
	return fmt.Sprintf("%s: %v: %s levels %d vs %d", e.Op, ErrShapeMismatch, e.Axis, e.Left, e.Right)
}

// IndexError reports a problem with a particular key of an Index, typically
// a violated ordering invariant or an ambiguous merge candidate.
type IndexError struct {
	Axis Axis
	Key  Key
	Pos  int
	Msg  string
	Err  error
}

func indexErrf(axis Axis, key Key, pos int, err error, format string, args ...any) error {
	return &IndexError{axis, key, pos, fmt.Sprintf(format, args...), err}
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

func (e *IndexError) Error() string {
	var buf strings.Builder
	if e.Axis != noAxis {
		buf.WriteString(e.Axis.String())
		buf.WriteByte(' ')
	}
	buf.WriteString("index")
	if e.Key.Levels() > 0 {
		buf.WriteByte(' ')
		buf.WriteString(e.Key.String())
	}
	if e.Pos >= 0 {
		fmt.Fprintf(&buf, " @%d", e.Pos)
	}
	if e.Msg != "" {
		buf.WriteString(": ")
		buf.WriteString(e.Msg)
	}
	if e.Err != nil {
		buf.WriteString(": ")
		buf.WriteString(e.Err.Error())
	}
	return buf.String()
}
