// Command gridbook reads delimited text and workbook files into sheets and
// prints, validates or browses them.
package main

import (
	"errors"
	"fmt"
	"os"
)

// errInvalid reports that validation found errors. Its message has already
// been printed.
var errInvalid = errors.New("validation failed")

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
