// Command kconsumerctl runs the consumer actor against a simulated broker:
// a small demo driver useful for exercising the actor without a live
// cluster, and a template for wiring pkg/actor into a real broker handle.
package main

import (
	"fmt"
	"os"

	"github.com/streamkit/kconsumer/cmd/kconsumerctl/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
