// Command v8lens analyzes V8 heap snapshots: dominator trees,
// retained sizes, duplicate detection, hidden-class bucketing, and
// retention-path queries.
package main

import (
	"fmt"
	"os"

	"github.com/prateek/v8lens/cmd/v8lens/cmd"
	"github.com/prateek/v8lens/v8err"
)

func main() {
	defer v8err.Recover(func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	})
	cmd.Execute()
}
