// Command pyactdemo spawns a handful of linked actors and a call/response
// server to exercise the runtime end to end, for smoke-testing and as a
// worked example of the public API.
package main

import (
	"fmt"
	"os"

	"github.com/markinthebyss/pyact-go/cmd/pyactdemo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
