package main

import (
	"fmt"
	"os"

	"github.com/jonathan/climate-careers/internal/config"
	"github.com/jonathan/climate-careers/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
	serveJobsFile   string
	serveVerbose    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the chat, job search, and resume matching endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to a JSON config file")
	serveCmd.Flags().StringVar(&serveJobsFile, "jobs", "", "Path to the jobs dataset (overrides config)")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Print detailed debug information")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Config{
		JobsFile: serveJobsFile,
		Port:     servePort,
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Verbose:  serveVerbose,
	}

	if serveConfigPath != "" {
		fileCfg, err := config.LoadConfig(serveConfigPath)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	cfg = cfg.MergeWithDefaults(config.DefaultConfig())

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: GEMINI_API_KEY is not set; chat advice and resume parsing are disabled")
	}

	srv, err := server.New(server.Config{
		Port:             cfg.Port,
		JobsFile:         cfg.JobsFile,
		KeywordIndexFile: cfg.KeywordIndexFile,
		CategoryFile:     cfg.CategoryFile,
		APIKey:           cfg.APIKey,
		Verbose:          cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
