// ABOUTME: Entry point for the mygames CLI
// ABOUTME: Admin client for the My Games catalogue backend

package main

import (
	"fmt"
	"os"

	"github.com/ronaldobertolucci/my-games-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
