package main

import (
	"fmt"
	"os"

	"github.com/danielpatrickdp/stagecraft/cmd/stagecraft/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
