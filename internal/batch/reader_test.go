package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadBatchFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []WordEntry
		wantErr     bool
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "words with translations",
			fileContent: `chat = cat
chien = dog
pain = bread`,
			want: []WordEntry{
				{Line: 1, Source: "chat", Target: "cat"},
				{Line: 2, Source: "chien", Target: "dog"},
				{Line: 3, Source: "pain", Target: "bread"},
			},
		},
		{
			name: "mixed format",
			fileContent: `pomme
chat = cat
chien
pain = bread`,
			want: []WordEntry{
				{Line: 1, Source: "pomme"},
				{Line: 2, Source: "chat", Target: "cat"},
				{Line: 3, Source: "chien"},
				{Line: 4, Source: "pain", Target: "bread"},
			},
		},
		{
			name: "empty lines and whitespace",
			fileContent: `
pomme

chat = cat  

  chien  

`,
			want: []WordEntry{
				{Line: 2, Source: "pomme"},
				{Line: 4, Source: "chat", Target: "cat"},
				{Line: 6, Source: "chien"},
			},
		},
		{
			name:        "windows line endings",
			fileContent: "pomme\r\nchat = cat\r\nchien",
			want: []WordEntry{
				{Line: 1, Source: "pomme"},
				{Line: 2, Source: "chat", Target: "cat"},
				{Line: 3, Source: "chien"},
			},
		},
		{
			name:        "byte order mark",
			fileContent: "\ufeffpomme = apple\n",
			want: []WordEntry{
				{Line: 1, Source: "pomme", Target: "apple"},
			},
		},
		{
			name:        "multiple equals signs",
			fileContent: `test = word = with = equals`,
			want: []WordEntry{
				{Line: 1, Source: "test", Target: "word = with = equals"},
			},
		},
		{
			name: "target only format",
			fileContent: `= apple
= cat
= dog`,
			want: []WordEntry{
				{Line: 1, Target: "apple"},
				{Line: 2, Target: "cat"},
				{Line: 3, Target: "dog"},
			},
		},
		{
			name: "comments and empty targets are skipped",
			fileContent: `# French basics
chat =
=
chien = dog`,
			want: []WordEntry{
				{Line: 4, Source: "chien", Target: "dog"},
			},
		},
		{
			name: "all three formats mixed",
			fileContent: `pomme
chat = cat
= dog
pain = bread
= table
chaise`,
			want: []WordEntry{
				{Line: 1, Source: "pomme"},
				{Line: 2, Source: "chat", Target: "cat"},
				{Line: 3, Target: "dog"},
				{Line: 4, Source: "pain", Target: "bread"},
				{Line: 5, Target: "table"},
				{Line: 6, Source: "chaise"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp file
			tmpDir := t.TempDir()
			tmpFile := filepath.Join(tmpDir, "test.txt")
			err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644)
			if err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadBatchFile(tmpFile)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReadBatchFile() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadBatchFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBatchFile_FileNotFound(t *testing.T) {
	_, err := ReadBatchFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestWordEntryNeeds(t *testing.T) {
	tests := []struct {
		entry       WordEntry
		needsTarget bool
		needsSource bool
	}{
		{WordEntry{Source: "chat", Target: "cat"}, false, false},
		{WordEntry{Source: "chat"}, true, false},
		{WordEntry{Target: "cat"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.entry.Source+"|"+tt.entry.Target, func(t *testing.T) {
			if got := tt.entry.NeedsTarget(); got != tt.needsTarget {
				t.Errorf("NeedsTarget() = %v, want %v", got, tt.needsTarget)
			}
			if got := tt.entry.NeedsSource(); got != tt.needsSource {
				t.Errorf("NeedsSource() = %v, want %v", got, tt.needsSource)
			}
		})
	}
}
