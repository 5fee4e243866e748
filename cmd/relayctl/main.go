package main

import (
	"os"

	"github.com/reshetovitsme/tg-channel-relay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
