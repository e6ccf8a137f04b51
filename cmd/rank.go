package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/filtering"
	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/ranking"
)

const (
	PromptShowTop             = "Show top candidates"
	PromptShortlist           = "Shortlist with explanation"
	PromptReportByBand        = "Report by match band"
	PromptRankingToFile       = "Dump ranking to file"
	PromptAppendToExcludeFile = "Append shown candidates to exclude file"
	PromptExit                = "Exit"

	excludeReason = "reviewed"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowTop, PromptShortlist, PromptReportByBand, PromptRankingToFile, PromptAppendToExcludeFile, PromptExit},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank a candidate pool against a job",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "job requirement JSON: file path, URL or - for stdin")
	rankCmd.Flags().String("candidates", "", "candidate pool JSON: file path, URL or - for stdin")
	rankCmd.Flags().IntP("limit", "l", 5, "how many top candidates to keep")
	rankCmd.Flags().Float64P("threshold", "t", 0, "minimum overall score (0-100) to keep a candidate")
	rankCmd.Flags().Bool("dynamic", true, "adjust weights to the job")
	rankCmd.Flags().Bool("all", false, "keep the whole ranking instead of the top")
	rankCmd.Flags().Bool("explain", false, "attach an explanation to the ranking")
	rankCmd.Flags().BoolP("yes", "y", false, "print the ranking as JSON without asking")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with candidates to exclude. Default is unset.")

	rankCmd.MarkFlagRequired("job")
	rankCmd.MarkFlagRequired("candidates")

	viper.BindPFlag("ranking.limit", rankCmd.Flags().Lookup("limit"))
	viper.BindPFlag("ranking.threshold", rankCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("dynamic-weights", rankCmd.Flags().Lookup("dynamic"))
	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
}

// rank is the main command for the cli.
func rank(cmd *cobra.Command) {
	ctx := commandContext(cmd)

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the candidate-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	loader, err := newLoader(config, logger)
	if err != nil {
		logger.Fatal("creating a source loader",
			zap.Error(err),
			zap.String("hint", fmt.Sprintf("set %s or the 'source.token-file' key in the configuration file", sourceTokenEnv)),
		)
	}

	job, err := loadJob(ctx, loader, cmd.Flag("job").Value.String(), logger)
	if err != nil {
		logger.Fatal("getting the job", zap.Error(err))
	}

	pool, err := loadCandidates(ctx, loader, cmd.Flag("candidates").Value.String(), logger)
	if err != nil {
		logger.Fatal("getting candidates", zap.Error(err))
	}

	logger.Info("getting candidates", zap.Int("count", pool.Len()))

	engine, err := newEngine(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating the ranking engine", zap.Error(err))
	}

	result, err := engine.Rank(ctx, job, pool)
	if err != nil {
		logger.Fatal("ranking candidates", zap.Error(err))
	}

	if result.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates to rank"))
		return
	}

	all, _ := cmd.Flags().GetBool("all")
	result, err = runFilters(ctx, config, all, logger, result)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if result.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filters"))
		return
	}

	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		engine.Explain(ctx, result)
	}

	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		pretty, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current ranking", zap.Int("count", result.Len()))

		if err := handleAction(ctx, action, engine, logger, config, result); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func newEngine(ctx context.Context, config *Config, logger *zap.Logger) (*ranking.Engine, error) {
	scorer, err := newScorer(config)
	if err != nil {
		return nil, fmt.Errorf("building scorer: %w", err)
	}

	explainer, err := newExplainer(ctx, config, logger)
	if err != nil {
		logger.Warn("using static explanations", zap.Error(err))
		explainer = nil
	}

	return ranking.New(ranking.Config{
		Weights: config.Weights,
		Dynamic: config.DynamicWeights,
		Workers: config.Ranking.Workers,
	}, ranking.Deps{
		Scorer:    scorer,
		Explainer: explainer,
		Logger:    logger,
	}), nil
}

func runFilters(ctx context.Context, config *Config, all bool, logger *zap.Logger, result *ranking.Result) (*ranking.Result, error) {
	steps := filtering.Default()
	if all {
		filtering.DisableByName(steps, "top", "--all flag is set")
	}

	filtered, err := filtering.Run(ctx, &filtering.Config{
		ExcludedCandidates: config.Exclude.Candidates,
		ExcludeFile:        config.ExcludeFile,
		Limit:              config.Ranking.Limit,
		Threshold:          config.Ranking.Threshold,
	}, filtering.Deps{Logger: logger}, steps, result)
	if err != nil {
		return nil, err
	}

	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	return filtered, nil
}

func handleAction(ctx context.Context, action string, engine *ranking.Engine, logger *zap.Logger, config *Config, result *ranking.Result) error {
	switch action {
	case PromptShowTop:
		for _, c := range result.Candidates {
			logger.Info(c.Match.Overall.Summary,
				zap.Int("rank", c.Rank),
				zap.String("candidate", c.Name()),
				zap.Float64("score", c.Score()),
			)
		}
		return nil
	case PromptShortlist:
		pretty, _ := json.MarshalIndent(engine.Shortlist(ctx, result, config.Ranking.Limit), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", result.Len()))
		return nil
	case PromptReportByBand:
		pretty, _ := json.MarshalIndent(result.ReportByBand(), "", "  ")
		logger.Info(string(pretty), zap.Int("candidates count", result.Len()))
		return nil
	case PromptRankingToFile:
		filename, err := result.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(config.ExcludeFile, logger, result)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func appendToExcludeFile(path string, logger *zap.Logger, result *ranking.Result) error {
	if path == "" {
		logger.Warn("exclude file is not set",
			zap.String("hint", fmt.Sprintf("use --exclude-file or %s", excludeFileEnv)),
		)
		return nil
	}

	excluded, err := profile.ReadExcludedFile(path)
	if err != nil {
		return err
	}

	excluded.Append(result.Pool().ToExcluded(result.JobTitle(), excludeReason))

	if err := excluded.ToFile(path); err != nil {
		return err
	}

	logger.Info("appended to exclude file", zap.String("filename", path), zap.Int("count", result.Len()))

	result.Exclude(excluded.Names())
	return nil
}
