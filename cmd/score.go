package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/profile"
	"github.com/spigell/candidate-ranker/internal/source"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single candidate against a job",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().String("job", "", "job requirement JSON: file path, URL or - for stdin")
	scoreCmd.Flags().String("candidate", "", "candidate profile JSON: file path, URL or - for stdin")
	scoreCmd.Flags().String("name", "", "pick this candidate from a pool given in --candidate")
	scoreCmd.MarkFlagRequired("job")
	scoreCmd.MarkFlagRequired("candidate")
}

func score(cmd *cobra.Command) {
	ctx := commandContext(cmd)

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	loader, err := newLoader(config, logger)
	if err != nil {
		logger.Fatal("creating a source loader", zap.Error(err))
	}

	job, err := loadJob(ctx, loader, cmd.Flag("job").Value.String(), logger)
	if err != nil {
		logger.Fatal("getting the job", zap.Error(err))
	}

	candidate, err := pickCandidate(ctx, loader, cmd.Flag("candidate").Value.String(), cmd.Flag("name").Value.String(), logger)
	if err != nil {
		logger.Fatal("getting the candidate", zap.Error(err))
	}

	scorer, err := newScorer(config)
	if err != nil {
		logger.Fatal("creating a scorer", zap.Error(err))
	}

	result := scorer.ScoreMatch(job, candidate)

	logger.Debug("candidate scored",
		zap.String("candidate", candidate.Name),
		zap.Float64("overall", result.Overall.Score),
	)

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}

// pickCandidate loads a single profile, or the named one from a pool when name
// is set.
func pickCandidate(ctx context.Context, loader *source.Loader, location, name string, logger *zap.Logger) (*profile.CandidateProfile, error) {
	if name == "" {
		return loadCandidate(ctx, loader, location, logger)
	}

	pool, err := loadCandidates(ctx, loader, location, logger)
	if err != nil {
		return nil, err
	}

	candidate := pool.FindByName(name)
	if candidate == nil {
		return nil, fmt.Errorf("candidate %q not found among %v", name, pool.Names())
	}
	return candidate, nil
}
