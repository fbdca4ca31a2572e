package main

import (
	"os"

	"github.com/conftrack/conftrack/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
