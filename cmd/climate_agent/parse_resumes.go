package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/climate-careers/internal/llm"
	"github.com/jonathan/climate-careers/internal/resume"
	"github.com/jonathan/climate-careers/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	parseResumesDir  string
	parseResumesFile string
	parseOutputDir   string
	parseSummaryFile string
	parseConcurrency int
)

var parseResumesCmd = &cobra.Command{
	Use:   "parse-resumes",
	Short: "Parse resume files into structured profile JSON",
	Long: `Extract text from PDF or TXT resumes, parse each into a structured profile
with the LLM, and write one profile JSON per resume plus a summary CSV.`,
	RunE: runParseResumes,
}

func init() {
	parseResumesCmd.Flags().StringVar(&parseResumesDir, "dir", "", "Directory of resume files (.pdf or .txt)")
	parseResumesCmd.Flags().StringVar(&parseResumesFile, "file", "", "Parse a single resume file")
	parseResumesCmd.Flags().StringVar(&parseOutputDir, "output-dir", "", "Directory to write profile JSON (defaults to the input directory)")
	parseResumesCmd.Flags().StringVar(&parseSummaryFile, "summary", "", "Path to write a summary CSV (optional)")
	parseResumesCmd.Flags().IntVar(&parseConcurrency, "concurrency", 3, "Number of resumes parsed in parallel")
	rootCmd.AddCommand(parseResumesCmd)
}

func runParseResumes(_ *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	paths, err := resolveResumePaths()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .pdf or .txt resumes found")
	}

	outputDir := parseOutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(paths[0])
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()
	parser := resume.NewParser(client)

	var mu sync.Mutex
	profiles := make(map[string]*types.ResumeProfile)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parseConcurrency)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			text, err := resume.ExtractText(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
				return nil
			}
			if text == "" {
				fmt.Fprintf(os.Stderr, "Empty text from %s, skipping\n", path)
				return nil
			}

			profile, err := parser.Parse(gctx, text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "LLM parse failed for %s: %v\n", path, err)
				return nil
			}

			stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			outPath := filepath.Join(outputDir, stem+"_parsed.json")
			data, err := json.MarshalIndent(profile, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %s\n", outPath)

			mu.Lock()
			profiles[path] = profile
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("Parsed %d of %d resumes\n", len(profiles), len(paths))

	if parseSummaryFile != "" && len(profiles) > 0 {
		if err := writeSummaryCSV(parseSummaryFile, profiles); err != nil {
			return err
		}
		fmt.Printf("Wrote summary: %s\n", parseSummaryFile)
	}
	return nil
}

func resolveResumePaths() ([]string, error) {
	if parseResumesFile != "" {
		ext := strings.ToLower(filepath.Ext(parseResumesFile))
		if ext != ".pdf" && ext != ".txt" {
			return nil, fmt.Errorf("unsupported file type %s: use .pdf or .txt", ext)
		}
		if _, err := os.Stat(parseResumesFile); err != nil {
			return nil, fmt.Errorf("file not found: %s", parseResumesFile)
		}
		return []string{parseResumesFile}, nil
	}

	if parseResumesDir == "" {
		return nil, fmt.Errorf("either --dir or --file is required")
	}
	entries, err := os.ReadDir(parseResumesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", parseResumesDir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".pdf" || ext == ".txt" {
			paths = append(paths, filepath.Join(parseResumesDir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func writeSummaryCSV(path string, profiles map[string]*types.ResumeProfile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create summary %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"name", "email", "engineer_level", "total_years_in_workforce",
		"total_years_in_this_workforce", "is_student", "is_pivoting_into_climate_tech",
		"skills", "areas_of_interest", "industries_worked_in", "work_experience_count",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		p := profiles[k]
		row := []string{
			p.Name,
			p.Email,
			p.EngineerLevel,
			strconv.FormatFloat(p.TotalYearsInWorkforce, 'f', -1, 64),
			strconv.FormatFloat(p.TotalYearsInThisWorkforce, 'f', -1, 64),
			strconv.FormatBool(p.IsStudent),
			strconv.FormatBool(p.IsPivotingIntoClimateTech),
			strings.Join(p.Skills, "; "),
			strings.Join(p.AreasOfInterest, "; "),
			strings.Join(p.IndustriesWorkedIn, "; "),
			strconv.Itoa(len(p.WorkExperience)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
