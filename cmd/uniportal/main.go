package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"uniportal.org/internal/cli"
	"uniportal.org/internal/obs"
)

func main() {
	// A missing .env is fine; the config loader has defaults for everything.
	_ = godotenv.Load()

	app, err := cli.NewApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "uniportal:", err)
		os.Exit(1)
	}
	err = cli.NewRootCmd(app).Execute()
	obs.Sync()
	if err != nil {
		os.Exit(1)
	}
}
