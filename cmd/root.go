package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/candidate-ranker/internal/scoring"
	"github.com/spigell/candidate-ranker/internal/weights"
)

const (
	app = "candidate-ranker"

	excludeFileEnv = "CANDIDATE_RANKER_EXCLUDE_FILE"
	sourceTokenEnv = "CANDIDATE_RANKER_SOURCE_TOKEN"
	geminiKeyEnv   = "GEMINI_API_KEY"
	geminiFileEnv  = "GEMINI_API_KEY_FILE"
)

type Config struct {
	Weights        weights.WeightSet `mapstructure:"weights"`
	DynamicWeights bool              `mapstructure:"dynamic-weights"`
	Similarity     SimilarityConfig  `mapstructure:"similarity"`
	Ranking        RankingConfig     `mapstructure:"ranking"`
	Source         SourceConfig      `mapstructure:"source"`
	Exclude        ExcludeConfig     `mapstructure:"exclude"`
	ExcludeFile    string            `mapstructure:"exclude-file"`
	AI             *AIConfig         `mapstructure:"ai"`
}

type SimilarityConfig struct {
	Strategy  string  `mapstructure:"strategy" validate:"omitempty,oneof=sequence jaro-winkler"`
	Threshold float64 `mapstructure:"threshold" validate:"gte=0,lte=1"`
}

type RankingConfig struct {
	Workers   int     `mapstructure:"workers" validate:"gte=0"`
	Limit     int     `mapstructure:"limit" validate:"gte=1"`
	Threshold float64 `mapstructure:"threshold" validate:"gte=0,lte=100"`
}

type SourceConfig struct {
	TokenFile string        `mapstructure:"token-file"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

type ExcludeConfig struct {
	Candidates []string `mapstructure:"candidates"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key" json:"-"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries" validate:"gte=0"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

var (
	// Used for flags.
	cfgFile string

	validate = validator.New(validator.WithRequiredStructEnabled())

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "candidate-ranker scores and ranks candidate profiles against a job requirement",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext executes the root command with ctx available to subcommands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	envs := map[string]string{
		"exclude-file":           excludeFileEnv,
		"ai.gemini.api-key-file": geminiFileEnv,
	}
	for key, env := range envs {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is candidate-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func setDefaults() {
	defaults := weights.Default()
	viper.SetDefault("weights.skills", defaults.Skills)
	viper.SetDefault("weights.experience", defaults.Experience)
	viper.SetDefault("weights.education", defaults.Education)
	viper.SetDefault("weights.certifications", defaults.Certifications)
	viper.SetDefault("dynamic-weights", true)
	viper.SetDefault("similarity.strategy", scoring.StrategySequence)
	viper.SetDefault("similarity.threshold", scoring.DefaultSimilarityThreshold)
	viper.SetDefault("ranking.limit", 5)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-retries", 3)
	viper.SetDefault("ai.gemini.max-log-length", 200)
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config file is not an error.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if config.AI != nil && config.AI.Enabled && config.AI.Gemini == nil {
		return nil, errors.New("invalid config: ai.gemini section is required when ai is enabled")
	}

	return &config, nil
}
