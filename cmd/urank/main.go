package main

import (
	"context"
	"fmt"
	"os"
)

const (
	appName = "urank"
	appSHA  = "compiled-and-deployed-at"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
