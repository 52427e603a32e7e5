package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/temirov/cloudtree/internal/utils"
)

func TestInitializeConfigurationCreatesLocalFile(t *testing.T) {
	memory := afero.NewMemMapFs()
	workingDirectory := "/work"
	path, err := InitializeConfiguration(InitOptions{WorkingDirectory: workingDirectory, Target: InitTargetLocal, FileSystem: memory})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(workingDirectory, utils.ConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	content, readErr := afero.ReadFile(memory, path)
	if readErr != nil {
		t.Fatalf("read config: %v", readErr)
	}
	if !strings.Contains(string(content), "sort_by: name") {
		t.Fatalf("unexpected configuration content: %s", string(content))
	}
}

func TestInitializeConfigurationHonorsGlobalTarget(t *testing.T) {
	memory := afero.NewMemMapFs()
	homeDirectory := "/home/tester"
	path, err := InitializeConfiguration(InitOptions{Target: InitTargetGlobal, HomeDirectory: homeDirectory, FileSystem: memory})
	if err != nil {
		t.Fatalf("InitializeConfiguration error: %v", err)
	}
	expectedPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
	if path != expectedPath {
		t.Fatalf("expected path %s, got %s", expectedPath, path)
	}
	if exists, _ := afero.Exists(memory, path); !exists {
		t.Fatalf("expected file to exist at %s", path)
	}
}

func TestInitializeConfigurationOverwrite(t *testing.T) {
	testCases := []struct {
		name        string
		force       bool
		expectError bool
	}{
		{name: "refuses_without_force", force: false, expectError: true},
		{name: "overwrites_with_force", force: true, expectError: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			memory := afero.NewMemMapFs()
			path := filepath.Join("/work", utils.ConfigFileName)
			if err := afero.WriteFile(memory, path, []byte("existing"), 0o600); err != nil {
				t.Fatalf("write seed config: %v", err)
			}
			_, err := InitializeConfiguration(InitOptions{WorkingDirectory: "/work", Target: InitTargetLocal, Force: testCase.force, FileSystem: memory})
			if testCase.expectError != (err != nil) {
				t.Fatalf("unexpected error state: %v", err)
			}
		})
	}
}

func TestInitializeConfigurationRejectsUnknownTarget(t *testing.T) {
	if _, err := InitializeConfiguration(InitOptions{Target: InitTarget("elsewhere"), FileSystem: afero.NewMemMapFs()}); err == nil {
		t.Fatalf("expected an error for an unknown target")
	}
}
