package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/cloudtree/internal/utils"
)

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func intPointer(value int) *int {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []struct {
		name            string
		globalContent   string
		localContent    string
		explicitPath    string
		explicitContent string
		expectFormat    string
		expectSortBy    string
		expectDepth     *int
		expectColor     *bool
		expectExclude   []string
		expectOptions   map[string]string
	}{
		{
			name:          "local_overrides_global",
			globalContent: "tree:\n  format: json\n  depth: 2\n  color: false\n  fs:\n    table: objects\n",
			localContent:  "tree:\n  format: raw\n  sort_by: size\n  paths:\n    exclude: [dist, dist, tmp]\n  fs:\n    database: /data/index.db\n",
			expectFormat:  "raw",
			expectSortBy:  "size",
			expectDepth:   intPointer(2),
			expectColor:   boolPointer(false),
			expectExclude: []string{"dist", "tmp"},
			expectOptions: map[string]string{"table": "objects", "database": "/data/index.db"},
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "tree:\n  format: json\n",
			localContent:    "tree:\n  format: json\n  depth: 5\n",
			explicitPath:    "custom.yaml",
			explicitContent: "tree:\n  format: raw\n",
			expectFormat:    "raw",
			expectExclude:   []string{},
		},
		{
			name:          "no_sources",
			expectExclude: []string{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			tree := loadedConfig.Tree
			if tree.Format != testCase.expectFormat {
				t.Fatalf("expected format %q, got %q", testCase.expectFormat, tree.Format)
			}
			if tree.SortBy != testCase.expectSortBy {
				t.Fatalf("expected sort_by %q, got %q", testCase.expectSortBy, tree.SortBy)
			}
			if !reflect.DeepEqual(tree.Depth, testCase.expectDepth) {
				t.Fatalf("unexpected depth %v", tree.Depth)
			}
			if !reflect.DeepEqual(tree.Color, testCase.expectColor) {
				t.Fatalf("unexpected color %v", tree.Color)
			}
			if !reflect.DeepEqual(tree.Paths.Exclude, testCase.expectExclude) {
				t.Fatalf("unexpected excludes: got %v want %v", tree.Paths.Exclude, testCase.expectExclude)
			}
			if len(testCase.expectOptions) > 0 && !reflect.DeepEqual(tree.FileSystem, testCase.expectOptions) {
				t.Fatalf("unexpected fs options: got %v want %v", tree.FileSystem, testCase.expectOptions)
			}
		})
	}
}

func TestLoadApplicationConfigurationRejectsDirectory(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)
	t.Setenv("USERPROFILE", homeDir)
	workingDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(workingDir, utils.ConfigFileName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected an error when the configuration path is a directory")
	}
}

func TestTreeConfigurationMergeKeepsUnsetFields(t *testing.T) {
	base := TreeConfiguration{
		Files:     boolPointer(true),
		Stats:     []string{"size"},
		Ascending: boolPointer(false),
		Paths:     PathConfiguration{ExcludeRegex: `\.tmp`, UseGitignore: boolPointer(false)},
	}
	override := TreeConfiguration{
		Stats: []string{"modified"},
		Paths: PathConfiguration{IncludeGit: boolPointer(true)},
	}
	merged := base.merge(override)
	if merged.Files == nil || !*merged.Files {
		t.Fatalf("expected files to survive the merge")
	}
	if !reflect.DeepEqual(merged.Stats, []string{"modified"}) {
		t.Fatalf("expected stats to be replaced, got %v", merged.Stats)
	}
	if merged.Ascending == nil || *merged.Ascending {
		t.Fatalf("expected ascending to remain false")
	}
	if merged.Paths.ExcludeRegex != `\.tmp` {
		t.Fatalf("expected exclude regex to survive, got %q", merged.Paths.ExcludeRegex)
	}
	if merged.Paths.UseGitignore == nil || *merged.Paths.UseGitignore {
		t.Fatalf("expected use_gitignore to remain false")
	}
	if merged.Paths.IncludeGit == nil || !*merged.Paths.IncludeGit {
		t.Fatalf("expected include_git to be set")
	}
}
