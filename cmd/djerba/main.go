// Command djerba runs Djerba source files.
package main

import (
	"fmt"
	"os"

	"github.com/khaledouriemmi/djerba/cmd/djerba/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
