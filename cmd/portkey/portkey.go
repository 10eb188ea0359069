package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/kiosk404/portkey/internal/pkg/errno"
	"github.com/kiosk404/portkey/internal/portkey/cmd"
)

func main() {
	command := cmd.NewDefaultPortkeyCommand()
	if err := command.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(errno.ExitCodeFor(err))
	}
}
