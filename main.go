// Worklog turns recent git commits into a one-line daily work log.
package main

import (
	"os"

	"github.com/huangsam/worklog/cmd"
	"github.com/huangsam/worklog/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.Logger.Error(err)
		os.Exit(1)
	}
}
