package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "flashy" {
		t.Errorf("Expected Use to be 'flashy', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Flashcard Trainer") {
		t.Errorf("Expected Short description to contain 'Flashcard Trainer'")
	}

	if err := cmd.Args(cmd, []string{"chat"}); err == nil {
		t.Error("Expected positional arguments to be rejected")
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"debug", true},
		{"source", false},
		{"progress", false},
		{"source-column", false},
		{"target-column", false},
		{"sheet", false},
		{"reveal-delay", false},
		{"tui", false},
		{"reset", false},
		{"archive", false},
		{"archive-on-reset", false},
		{"stats", false},
		{"list-models", false},
		{"import", false},
		{"output", false},
		{"translator", false},
		{"openai-model", false},
		{"gemini-model", false},
		{"anki", false},
		{"anki-csv", false},
		{"deck-name", false},
		{"all-words", false},
		{"anki-phonetic", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	progressFlag := cmd.Flags().Lookup("progress")
	if progressFlag == nil {
		t.Fatal("progress flag not found")
	}

	home, _ := os.UserHomeDir()
	expectedDefault := filepath.Join(home, ".local", "state", "flashy", "words_to_learn.csv")
	if progressFlag.DefValue != expectedDefault {
		t.Errorf("Expected default progress file to be %s, got %s", expectedDefault, progressFlag.DefValue)
	}
	if progressFlag.Shorthand != "p" {
		t.Errorf("Expected progress shorthand p, got %s", progressFlag.Shorthand)
	}

	sourceFlag := cmd.Flags().Lookup("source")
	if sourceFlag == nil {
		t.Fatal("source flag not found")
	}
	if sourceFlag.DefValue != "data/french_words.csv" {
		t.Errorf("Expected default source to be data/french_words.csv, got %s", sourceFlag.DefValue)
	}

	delayFlag := cmd.Flags().Lookup("reveal-delay")
	if delayFlag == nil {
		t.Fatal("reveal-delay flag not found")
	}
	if delayFlag.DefValue != "3s" {
		t.Errorf("Expected default reveal delay 3s, got %s", delayFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantDelay time.Duration
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				tmpDir := t.TempDir()
				cfgPath := filepath.Join(tmpDir, "test-config.yaml")
				content := `words:
  source: /test/words.csv
session:
  reveal_delay: 5s
translation:
  openai_key: test-key`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			wantDelay: 5 * time.Second,
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				// Keep the developer's real ~/.flashy.yaml out of the test
				t.Setenv("HOME", t.TempDir())
				t.Chdir(t.TempDir())
				return ""
			},
			wantDelay: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			cfgPath := tt.setupFunc(t)
			InitConfig(cfgPath)

			// Test environment variable prefix
			t.Setenv("FLASHY_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			if got := viper.GetDuration("session.reveal_delay"); got != tt.wantDelay {
				t.Errorf("session.reveal_delay = %v, want %v", got, tt.wantDelay)
			}
		})
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{
			name:      "from environment",
			envKey:    "env-test-key",
			configKey: "config-test-key",
			expected:  "env-test-key",
		},
		{
			name:      "from config when no env",
			envKey:    "",
			configKey: "config-test-key",
			expected:  "config-test-key",
		},
		{
			name:      "empty when neither set",
			envKey:    "",
			configKey: "",
			expected:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
			}

			got := GetOpenAIKey()
			if got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	resetViper(t)

	t.Setenv("GEMINI_API_KEY", "")
	viper.Set("translation.gemini_key", "config-gemini")
	if got := GetGeminiKey(); got != "config-gemini" {
		t.Errorf("GetGeminiKey() = %v, want config-gemini", got)
	}

	t.Setenv("GEMINI_API_KEY", "env-gemini")
	if got := GetGeminiKey(); got != "env-gemini" {
		t.Errorf("GetGeminiKey() = %v, want env-gemini", got)
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("source", "/test/words.xlsx")
	cmd.Flags().Set("reveal-delay", "1500ms")
	cmd.Flags().Set("translator", "gemini")

	bindFlagsToViper(cmd)

	if viper.GetString("words.source") != "/test/words.xlsx" {
		t.Errorf("Expected words.source to be /test/words.xlsx, got %s", viper.GetString("words.source"))
	}

	if viper.GetDuration("session.reveal_delay") != 1500*time.Millisecond {
		t.Errorf("Expected session.reveal_delay to be 1.5s, got %v", viper.GetDuration("session.reveal_delay"))
	}

	if viper.GetString("translation.provider") != "gemini" {
		t.Errorf("Expected translation.provider to be gemini, got %s", viper.GetString("translation.provider"))
	}
}

func TestApplyConfig(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Config values lose against explicit flags
	viper.Set("words.sheet", "Vocab")
	viper.Set("anki.deck_name", "Mes mots")
	cmd.Flags().Set("source-column", "Bulgarian")

	ApplyConfig(flags)

	if flags.Sheet != "Vocab" {
		t.Errorf("Sheet = %q, want Vocab", flags.Sheet)
	}
	if flags.DeckName != "Mes mots" {
		t.Errorf("DeckName = %q, want Mes mots", flags.DeckName)
	}
	if flags.SourceColumn != "Bulgarian" {
		t.Errorf("SourceColumn = %q, want Bulgarian", flags.SourceColumn)
	}
	if flags.TargetColumn != "English" {
		t.Errorf("TargetColumn = %q, want English", flags.TargetColumn)
	}
	if flags.RevealDelay != 3*time.Second {
		t.Errorf("RevealDelay = %v, want 3s", flags.RevealDelay)
	}
}
