// Package main is the entry point for the goonj registration service.
package main

import (
	"fmt"
	"os"

	"goonj/cmd"
)

// Build information injected via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// @title Goonj Registration API
// @version 1.0
// @description Event catalog, registration submission and admin dashboard for the Goonj festival.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.SetVersion(fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
