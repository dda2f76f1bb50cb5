package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/banglacsv/internal"
	"codeberg.org/snonux/banglacsv/internal/translation"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "banglacsv",
		Short: "English to Bangla CSV Translator",
		Long: `banglacsv translates one column of a CSV file from English to Bangla,
over a range of rows, and saves the result as a new CSV file.

Rows are translated one at a time with a short pause between them to stay
below the rate limits of the translation service.

Examples:
  banglacsv                                   # Launch interactive GUI (default)
  banglacsv -i data.csv -c text -r 0:100 -o . # Translate rows 0-99 in the terminal
  banglacsv --backend openai -i data.csv -c text -r 100:200 -o out/`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.banglacsv.yaml)")

	// Job flags
	cmd.Flags().StringVarP(&flags.InputFile, "input", "i", "", "Input CSV file")
	cmd.Flags().StringVarP(&flags.Column, "column", "c", "", "Column to translate")
	cmd.Flags().StringVarP(&flags.Range, "range", "r", "", "Row range start:end, end excluded (e.g. 1:100)")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", "", "Output directory")

	// Translation flags
	cmd.Flags().StringVar(&flags.Backend, "backend", flags.Backend, "Translation backend: google, openai or gemini")
	cmd.Flags().StringVar(&flags.Source, "source", flags.Source, "Source language code")
	cmd.Flags().StringVar(&flags.Target, "target", flags.Target, "Target language code")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model for the openai backend")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for the gemini backend")
	cmd.Flags().DurationVar(&flags.Pacing, "pacing", flags.Pacing, "Pause after each row")
	cmd.Flags().IntVar(&flags.Attempts, "attempts", flags.Attempts, "Translation attempts per cell before keeping the original text")
	cmd.Flags().DurationVar(&flags.RetryDelay, "retry-delay", flags.RetryDelay, "Pause after a failed attempt")
	cmd.Flags().StringVar(&flags.CacheMode, "cache", flags.CacheMode, "Translation cache: none, memory or sqlite")
	cmd.Flags().StringVar(&flags.CacheDB, "cache-db", "", "SQLite cache file (default is $HOME/.local/state/banglacsv/cache.db)")
	cmd.Flags().BoolVar(&flags.Breaker, "breaker", false, "Stop calling the backend for a while after repeated failures")

	// Misc flags
	cmd.Flags().StringVar(&flags.Lang, "lang", flags.Lang, "Language of the user interface: en or bn")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Log every row")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translation.backend", cmd.Flags().Lookup("backend"))
	viper.BindPFlag("translation.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("translation.target", cmd.Flags().Lookup("target"))
	viper.BindPFlag("translation.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("translation.attempts", cmd.Flags().Lookup("attempts"))
	viper.BindPFlag("translation.retry_delay", cmd.Flags().Lookup("retry-delay"))
	viper.BindPFlag("translation.breaker", cmd.Flags().Lookup("breaker"))
	viper.BindPFlag("cache.mode", cmd.Flags().Lookup("cache"))
	viper.BindPFlag("cache.path", cmd.Flags().Lookup("cache-db"))
	viper.BindPFlag("batch.pacing", cmd.Flags().Lookup("pacing"))
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("ui.lang", cmd.Flags().Lookup("lang"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// API keys may live in a .env file next to the binary's working directory
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".banglacsv" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".banglacsv")
	}

	// Environment variables
	viper.SetEnvPrefix("BANGLACSV")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translation.gemini_key")
}

// DefaultCachePath returns where the sqlite cache lives unless configured
func DefaultCachePath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "banglacsv", "cache.db")
}

// TranslationConfig builds the translator configuration from viper, which
// holds the bound flags, the config file and BANGLACSV_ environment values
func TranslationConfig() *translation.Config {
	config := translation.DefaultConfig()

	if v := viper.GetString("translation.backend"); v != "" {
		config.Backend = v
	}
	if v := viper.GetString("translation.source"); v != "" {
		config.Source = v
	}
	if v := viper.GetString("translation.target"); v != "" {
		config.Target = v
	}
	if v := viper.GetString("translation.openai_model"); v != "" {
		config.OpenAIModel = v
	}
	if v := viper.GetString("translation.gemini_model"); v != "" {
		config.GeminiModel = v
	}
	if viper.IsSet("translation.attempts") {
		config.Attempts = viper.GetInt("translation.attempts")
	}
	if viper.IsSet("translation.retry_delay") {
		config.RetryDelay = viper.GetDuration("translation.retry_delay")
	}
	config.Breaker = viper.GetBool("translation.breaker")

	if v := viper.GetString("cache.mode"); v != "" {
		config.CacheMode = v
	}
	config.CachePath = viper.GetString("cache.path")
	if config.CacheMode == translation.CacheSQLite && config.CachePath == "" {
		config.CachePath = DefaultCachePath()
	}

	config.OpenAIKey = GetOpenAIKey()
	config.GeminiKey = GetGeminiKey()
	return config
}
