package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/candidate-ranker/internal/logger"
	"github.com/spigell/candidate-ranker/internal/ranking"
	"github.com/spigell/candidate-ranker/internal/weights"
)

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the base weights and the weights adjusted for a job",
	Run: func(cmd *cobra.Command, _ []string) {
		showWeights(cmd)
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)

	weightsCmd.Flags().String("job", "", "job requirement JSON: file path, URL or - for stdin")
	weightsCmd.MarkFlagRequired("job")
}

func showWeights(cmd *cobra.Command) {
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

	base := config.Weights.Normalize()
	report := struct {
		Base     weights.WeightSet `json:"base"`
		Shape    weights.JobShape  `json:"job_shape"`
		Adjusted weights.WeightSet `json:"adjusted"`
	}{
		Base:     base,
		Shape:    ranking.ShapeOf(job),
		Adjusted: weights.Adjust(base, ranking.ShapeOf(job)),
	}

	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(pretty))
}
