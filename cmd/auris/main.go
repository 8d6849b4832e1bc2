// Package main provides the Auris speech frontend CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("Auris Speech Frontend %s\n", version)
		return
	}

	fmt.Println("Auris - Speech Transformer Input Frontend for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version    Show version")
	fmt.Println("")
	fmt.Println("See examples/frontend for a runnable pipeline demo.")
}
