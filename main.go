package main

import (
	"os"

	"github.com/oakwood-commons/kvdig/cmd"
	"github.com/oakwood-commons/kvdig/pkg/logger"
)

func main() {
	err := cmd.Execute()
	cmd.PrintError(os.Stderr, err)

	logger.Sync()
	if code := cmd.ExitCode(err); code != cmd.ExitOK {
		os.Exit(code)
	}
}
