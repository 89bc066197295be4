// file: main.go
// version: 2.0.0
// guid: 1d9f3c2a-6b4e-4a7f-8c5d-0e2b7a9f4c61

package main

import (
	"fmt"
	"os"

	"github.com/jdfalk/isbn-renamer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
