package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/ats-analyzer/internal/config"
	"alfredoptarigan/ats-analyzer/internal/models"
	"alfredoptarigan/ats-analyzer/internal/services"
)

type options struct {
	resumePath string
	jobPath    string
	jobText    string
	asJSON     bool
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "analyze --resume <file> (--job <file> | --job-text <text>)",
		Short: "Score a resume against a job description",
		Long: `Extract the text of a resume (PDF or DOCX), compare it with a job
description and print the match percentage with matching and missing skills.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.resumePath, "resume", "r", "", "path to the resume document (PDF or DOCX)")
	cmd.Flags().StringVarP(&opts.jobPath, "job", "j", "", "path to a plain-text job description")
	cmd.Flags().StringVar(&opts.jobText, "job-text", "", "job description text")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline progress to stderr")
	_ = cmd.MarkFlagRequired("resume")
	cmd.MarkFlagsMutuallyExclusive("job", "job-text")
	cmd.MarkFlagsOneRequired("job", "job-text")

	return cmd
}

func run(out io.Writer, opts *options) error {
	if !opts.verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.Load()

	jobDescription := opts.jobText
	if opts.jobPath != "" {
		raw, err := os.ReadFile(opts.jobPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobDescription = string(raw)
	}
	if strings.TrimSpace(jobDescription) == "" {
		return errors.New("job description is empty")
	}

	document, err := os.ReadFile(opts.resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	annotator, err := services.LoadAnnotator(cfg.NLP.ModelPath)
	if err != nil {
		return err
	}

	analyzer := services.NewAnalyzerService(
		services.NewDocumentParserService(),
		services.NewEntityExtractorService(annotator),
		services.NewSimilarityScorer(),
	)

	result, err := analyzer.Analyze(document, jobDescription)
	if err != nil {
		if errors.Is(err, services.ErrUnreadableDocument) {
			return fmt.Errorf("%w (make sure the file is a readable PDF or DOCX)", err)
		}
		return err
	}

	suggestions := services.BuildSuggestions(result.MatchPercentage)
	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.AnalyzeResponse{
			ApplicantName:   result.ApplicantName,
			MatchPercentage: result.MatchPercentage,
			MatchingSkills:  result.MatchingSkills.Sorted(),
			MissingSkills:   result.MissingSkills.Sorted(),
			Suggestions:     suggestions,
		})
	}

	printReport(out, result, suggestions)
	return nil
}

func printReport(out io.Writer, result *models.AnalysisResult, suggestions models.Suggestions) {
	fmt.Fprintf(out, "Applicant Name: %s\n", result.ApplicantName)
	fmt.Fprintf(out, "Match Percentage (Out of 100): %.1f\n\n", result.MatchPercentage)

	fmt.Fprintf(out, "Skills You Have (%d):\n", result.MatchingSkills.Len())
	printList(out, result.MatchingSkills.Sorted())

	fmt.Fprintf(out, "\nMissing Skills (%d):\n", result.MissingSkills.Len())
	printList(out, result.MissingSkills.Sorted())

	if len(suggestions.Improvements) > 0 {
		fmt.Fprintln(out, "\nSuggestions to Improve Your ATS Score:")
		for i, tip := range suggestions.Improvements {
			fmt.Fprintf(out, "  %d. %s\n", i+1, tip)
		}
	}
	if len(suggestions.Resources) > 0 {
		fmt.Fprintln(out, "\nSuggested Videos to Improve Your Resume or Skills:")
		for _, r := range suggestions.Resources {
			fmt.Fprintf(out, "  - %s: %s\n", r.Title, r.URL)
		}
	}
}

func printList(out io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(out, "  (none)")
		return
	}
	fmt.Fprintf(out, "  %s\n", strings.Join(items, ", "))
}
