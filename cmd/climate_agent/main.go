// Package main provides the entry point for the climate careers HTTP API
// server and its data preparation tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "climate_agent",
	Short: "Climate careers HTTP API server",
	Long:  "Climate careers serves a climate-tech career counselor: job search and matching over an in-memory dataset, resume parsing, and LLM-backed career guidance via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
