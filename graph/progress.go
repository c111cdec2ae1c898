package graph

import "github.com/prateek/v8lens"

// firstProgress collapses a variadic ProgressFunc parameter into a
// single callback that is always safe to call: nil progress slices,
// and nil entries within them, become a no-op.
func firstProgress(progress []v8lens.ProgressFunc) v8lens.ProgressFunc {
	if len(progress) == 0 || progress[0] == nil {
		return func(phase string, done, total int) {}
	}
	return progress[0]
}
