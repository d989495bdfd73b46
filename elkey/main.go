// Command elkey runs the iambic keyer core in simulation.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/sarchlab/elkey/elkey/cmd"
)

func main() {
	code := cmd.Execute()
	atexit.Exit(code)
}
