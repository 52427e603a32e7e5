package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/temirov/cloudtree/internal/utils"
)

const errorLoadEnvironmentFormat = "load %s: %w"

// LoadEnvironmentFileSystemOptions reads backend options from variables named
// CLOUDTREE_FS_<KEY>. A .env file in workingDirectory is loaded first; it
// never overrides variables already present in the process environment.
// Keys are returned lower-cased.
func LoadEnvironmentFileSystemOptions(workingDirectory string) (map[string]string, error) {
	environmentFilePath := filepath.Join(workingDirectory, utils.EnvironmentFileName)
	if loadError := godotenv.Load(environmentFilePath); loadError != nil && !errors.Is(loadError, fs.ErrNotExist) {
		return nil, fmt.Errorf(errorLoadEnvironmentFormat, environmentFilePath, loadError)
	}
	options := make(map[string]string)
	for _, variable := range os.Environ() {
		name, value, found := strings.Cut(variable, "=")
		if !found || !strings.HasPrefix(name, utils.FileSystemEnvironmentPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, utils.FileSystemEnvironmentPrefix))
		if key == "" {
			continue
		}
		options[key] = value
	}
	return options, nil
}
