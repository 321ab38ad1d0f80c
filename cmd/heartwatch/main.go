package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/blackwell-systems/heartwatch/internal/app"
)

func main() {
	if err := app.Execute(); err != nil {
		var exitErr *app.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
