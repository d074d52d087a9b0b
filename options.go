package hiertab

import (
	"log/slog"
)

// Options configure a Merger. The zero value is usable.
type Options struct {
	// Logger receives debug-level merge traces. Defaults to slog.Default().
	Logger *slog.Logger

	// Verbose also logs every relabeled key.
	Verbose bool

	// Fill is stored in cells a merge creates without a value. Nil selects
	// Missing unless FillNil is set.
	Fill any

	// FillNil makes a nil Fill store nil itself.
	FillNil bool

	// Copy selects how cell values are copied into the result.
	Copy CopyMode

	// Parallelism bounds the number of goroutines merging column cells in
	// ConcatRows. Zero or one merges sequentially.
	Parallelism int

	// Strict validates every produced table before returning it.
	Strict bool
}

func (opt Options) withDefaults() Options {
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Fill == nil && !opt.FillNil {
		opt.Fill = Missing
	}
	if opt.Parallelism < 1 {
		opt.Parallelism = 1
	}
	return opt
}
