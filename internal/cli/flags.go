package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	SourceFile   string
	ProgressFile string
	SourceColumn string
	TargetColumn string
	Sheet        string
	RevealDelay  time.Duration
	Debug        bool

	// Modes
	TUIMode        bool
	Reset          bool
	Archive        bool
	ArchiveOnReset bool
	Stats          bool
	ListModels     bool

	// Import flags
	ImportFile  string
	OutputFile  string
	Translator  string
	OpenAIModel string
	GeminiModel string

	// Anki flags
	AnkiFile string
	AnkiCSV  bool
	DeckName string
	AllWords bool
	Phonetic bool
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		SourceColumn: "French",
		TargetColumn: "English",
		RevealDelay:  3 * time.Second,
		Translator:   "openai",
		OpenAIModel:  "gpt-4o-mini",
		GeminiModel:  "gemini-2.5-flash",
		DeckName:     "French Vocabulary",
	}
}
