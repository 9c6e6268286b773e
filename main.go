package main

import (
	"context"
	"os"

	"portfolio/service"
)

const cliVersion = "1.0.0"

var exit = os.Exit

func main() {
	exit(service.Execute(context.Background(), cliVersion, os.Args[1:]))
}
