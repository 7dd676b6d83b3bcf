package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careercompass/internal/analysis"
	"github.com/spigell/careercompass/internal/keywords"
	"github.com/spigell/careercompass/internal/logger"
	"github.com/spigell/careercompass/internal/matching"
	"github.com/spigell/careercompass/internal/recommend"
	"github.com/spigell/careercompass/internal/report"
	"github.com/spigell/careercompass/internal/textsource"
)

const (
	PromptJSONReport     = "Print JSON report"
	PromptMatchedSkills  = "Show matched skills"
	PromptMissingSkills  = "Show missing skills"
	PromptProjects       = "Inspect a suggested project"
	PromptExportExcel    = "Export report to xlsx"
	PromptExit           = "Exit"
	PromptBack           = "back"
	defaultReportPattern = app + "-%s.xlsx"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptJSONReport, PromptMatchedSkills, PromptMissingSkills, PromptProjects, PromptExportExcel, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé against a job description and suggest projects",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "résumé file (.pdf, .docx or .txt)")
	analyzeCmd.Flags().String("jd", "", "job description file")
	analyzeCmd.Flags().String("jd-text", "", "job description text")
	analyzeCmd.Flags().String("xlsx", "", "write the report to this xlsx file")
	analyzeCmd.Flags().Bool("json-report", false, "print the report as JSON instead of the summary")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "do not open the interactive menu")
}

func analyze(cmd *cobra.Command) {
	logger, err := logger.New(logger.Options{JSON: viper.GetBool("json"), Debug: viper.GetBool("debug")})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer logger.Sync()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the careercompass", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	resumeFile, _ := cmd.Flags().GetString("resume")
	jdFile, _ := cmd.Flags().GetString("jd")
	jdText, _ := cmd.Flags().GetString("jd-text")
	jdSource := textsource.Source{Name: "job description", Value: jdText, File: jdFile}

	if strings.TrimSpace(resumeFile) == "" || !textsource.Configured(jdSource) {
		logger.Fatal("please upload both a résumé and a job description",
			zap.String("hint", "use --resume together with --jd or --jd-text"),
		)
	}

	resumeData, err := os.ReadFile(resumeFile)
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}

	jd, err := textsource.Load(jdSource)
	if err != nil {
		logger.Fatal("loading job description", zap.Error(err))
	}

	analyzer, err := newAnalyzer(config, logger)
	if err != nil {
		logger.Fatal("preparing the analysis", zap.Error(err))
	}

	result, err := analyzer.Analyze(analysis.Input{ResumeFile: resumeFile, ResumeData: resumeData, JDText: jd})
	if err != nil {
		logger.Fatal("analysis failed", zap.Error(err))
	}

	out := cmd.OutOrStdout()
	jsonReport, _ := cmd.Flags().GetBool("json-report")
	if jsonReport {
		err = writeJSON(out, result)
	} else {
		err = report.WriteSummary(out, result)
	}
	if err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	xlsxPath, _ := cmd.Flags().GetString("xlsx")
	if xlsxPath != "" {
		if err := exportExcel(logger, result, xlsxPath); err != nil {
			logger.Fatal("exporting report", zap.Error(err))
		}
	}

	if autoApprove, _ := cmd.Flags().GetBool("auto-approve"); autoApprove {
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, out, result, xlsxPath); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func newAnalyzer(config *Config, log *zap.Logger) (*analysis.Analyzer, error) {
	dict := config.Dictionary()

	catalog, err := config.LoadCatalog(dict)
	if err != nil {
		var malformed *recommend.MalformedEntryError
		if errors.As(err, &malformed) {
			log.Error("malformed catalog entry",
				zap.Int("index", malformed.Index),
				zap.String("title", malformed.Title),
				zap.String("reason", malformed.Reason),
			)
		}
		return nil, fmt.Errorf("loading project catalog: %w", err)
	}
	log.Info("project catalog loaded",
		zap.String(logger.FieldCatalog, config.CatalogSource()),
		zap.Int("projects", catalog.Len()),
		zap.Int("skills", dict.Len()),
	)

	matcher, err := matching.NewMatcher(config.Matching.CosineWeight)
	if err != nil {
		return nil, err
	}

	return analysis.New(analysis.Options{
		Extractor:      keywords.NewExtractor(dict),
		Matcher:        matcher,
		Catalog:        catalog,
		MaxSuggestions: config.Recommend.MaxSuggestions,
		TargetPercent:  config.Report.TargetPercent,
		Logger:         log,
	})
}

func handleAction(action string, logger *zap.Logger, out io.Writer, result *analysis.Report, xlsxPath string) error {
	switch action {
	case PromptJSONReport:
		return writeJSON(out, result)
	case PromptMatchedSkills:
		return writeList(out, "Matched skills", result.Match.Matched)
	case PromptMissingSkills:
		return writeList(out, "Missing skills", result.Match.Missing)
	case PromptProjects:
		return inspectProjects(out, result)
	case PromptExportExcel:
		if xlsxPath == "" {
			xlsxPath = fmt.Sprintf(defaultReportPattern, result.ID)
		}
		return exportExcel(logger, result, xlsxPath)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func inspectProjects(out io.Writer, result *analysis.Report) error {
	suggested := result.Recommendations.Suggested
	if len(suggested) == 0 {
		_, err := fmt.Fprintln(out, "No suggestions needed. You're well aligned!")
		return err
	}

	items := make([]string, 0, len(suggested)+1)
	for i, p := range suggested {
		items = append(items, projectLabel(i, p))
	}

	for {
		projectPrompt := promptui.Select{
			Label: "Choose a project and press ENTER",
			Items: append(items, PromptBack),
		}

		i, selected, err := projectPrompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		if err := writeProject(out, suggested[i], result.Recommendations.Missing); err != nil {
			return err
		}
	}
}

func projectLabel(i int, p recommend.ProjectIdea) string {
	return fmt.Sprintf("%d. %s / %s / %s", i+1, p.Title, p.Domain, p.Level)
}

func writeProject(out io.Writer, p recommend.ProjectIdea, missing []string) error {
	covers := recommend.Covers(p, keywords.NewSet(missing...))
	_, err := fmt.Fprintf(out, "%s (%s, %s)\n%s\nTools: %s\nCloses: %s\n",
		p.Title, p.Domain, p.Level, p.Description,
		strings.Join(p.Tools, ", "), strings.Join(covers, ", "))
	return err
}

func writeList(out io.Writer, label string, items []string) error {
	if len(items) == 0 {
		_, err := fmt.Fprintf(out, "%s: none\n", label)
		return err
	}
	_, err := fmt.Fprintf(out, "%s (%d):\n  - %s\n", label, len(items), strings.Join(items, "\n  - "))
	return err
}

func writeJSON(out io.Writer, result *analysis.Report) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func exportExcel(logger *zap.Logger, result *analysis.Report, path string) error {
	written, err := report.ExportToExcel(result, path)
	if err != nil {
		return err
	}
	logger.Info("report exported", zap.String("filename", written))
	return nil
}
