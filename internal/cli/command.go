package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/flashy/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flashy",
		Short: "French Flashcard Trainer",
		Long: `flashy shows a French word, waits three seconds and reveals the
English translation. Words you mark as known are dropped from your
personal list, so every session only asks what is left to learn.

Examples:
  flashy                          # Launch the desktop app (default)
  flashy --tui                    # Train in the terminal
  flashy --stats                  # Show how many words are left
  flashy --reset --archive-on-reset
  flashy --import words.txt -o data/my_words.csv
  flashy --anki french.apkg       # Export the remaining words to Anki
  flashy --list-models            # Show models usable with your API keys`,
		Args:          cobra.NoArgs,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultProgressFile is where the list of words still to learn is kept
func DefaultProgressFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "flashy", "words_to_learn.csv")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.flashy.yaml)")
	cmd.PersistentFlags().BoolVar(&flags.Debug, "debug", false, "Enable debug logging")

	// Word list flags
	cmd.Flags().StringVarP(&flags.SourceFile, "source", "s", "data/french_words.csv", "Source word list (.csv or .xlsx)")
	cmd.Flags().StringVarP(&flags.ProgressFile, "progress", "p", DefaultProgressFile(), "File holding the words still to learn")
	cmd.Flags().StringVar(&flags.SourceColumn, "source-column", flags.SourceColumn, "Header of the column shown first")
	cmd.Flags().StringVar(&flags.TargetColumn, "target-column", flags.TargetColumn, "Header of the column revealed after the delay")
	cmd.Flags().StringVar(&flags.Sheet, "sheet", "", "Sheet to read from .xlsx files (default: first sheet)")
	cmd.Flags().DurationVar(&flags.RevealDelay, "reveal-delay", flags.RevealDelay, "How long the front of a card is shown")

	// Mode flags
	cmd.Flags().BoolVar(&flags.TUIMode, "tui", false, "Train in the terminal instead of the desktop app")
	cmd.Flags().BoolVar(&flags.Reset, "reset", false, "Restore the full word list and exit")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Archive the progress file and exit")
	cmd.Flags().BoolVar(&flags.ArchiveOnReset, "archive-on-reset", false, "Archive the progress file before every reset")
	cmd.Flags().BoolVar(&flags.Stats, "stats", false, "Print learning statistics and exit")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List the translation models available to your API keys")

	// Import flags
	cmd.Flags().StringVar(&flags.ImportFile, "import", "", "Import a word list (one 'source = target' per line)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Destination of --import (default: the source file)")
	cmd.Flags().StringVar(&flags.Translator, "translator", flags.Translator, "Translator for missing halves: openai or gemini")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI chat model used for translation")
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model used for translation")

	// Anki flags
	cmd.Flags().StringVar(&flags.AnkiFile, "anki", "", "Export words to an Anki package (.apkg) at this path")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Export legacy CSV instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVar(&flags.AllWords, "all-words", false, "Export the whole source list instead of the words left")
	cmd.Flags().BoolVar(&flags.Phonetic, "anki-phonetic", false, "Add IPA transcriptions from OpenAI to the card notes")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("words.source", cmd.Flags().Lookup("source"))
	viper.BindPFlag("words.progress", cmd.Flags().Lookup("progress"))
	viper.BindPFlag("words.source_column", cmd.Flags().Lookup("source-column"))
	viper.BindPFlag("words.target_column", cmd.Flags().Lookup("target-column"))
	viper.BindPFlag("words.sheet", cmd.Flags().Lookup("sheet"))
	viper.BindPFlag("session.reveal_delay", cmd.Flags().Lookup("reveal-delay"))
	viper.BindPFlag("session.archive_on_reset", cmd.Flags().Lookup("archive-on-reset"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("translator"))
	viper.BindPFlag("translation.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("translation.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
}

// ApplyConfig copies config file and environment values into flags the
// user did not set on the command line
func ApplyConfig(flags *Flags) {
	flags.SourceFile = viper.GetString("words.source")
	flags.ProgressFile = viper.GetString("words.progress")
	flags.SourceColumn = viper.GetString("words.source_column")
	flags.TargetColumn = viper.GetString("words.target_column")
	flags.Sheet = viper.GetString("words.sheet")
	if d := viper.GetDuration("session.reveal_delay"); d > 0 {
		flags.RevealDelay = d
	}
	flags.ArchiveOnReset = viper.GetBool("session.archive_on_reset")
	flags.Translator = viper.GetString("translation.provider")
	flags.OpenAIModel = viper.GetString("translation.openai_model")
	flags.GeminiModel = viper.GetString("translation.gemini_model")
	flags.DeckName = viper.GetString("anki.deck_name")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// API keys may live in a .env file next to the binary
	_ = godotenv.Load()

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

		// Search config in home directory with name ".flashy" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".flashy")
	}

	// Environment variables
	viper.SetEnvPrefix("FLASHY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
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
