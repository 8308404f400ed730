package main

import (
	"os"

	"github.com/usi-samples/usi-client-go/cli"
	. "github.com/usi-samples/usi-client-go/logger"
)

func main() {
	// Init the logger first thing
	InitLogger()
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
