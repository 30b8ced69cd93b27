package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tphakala/pokereview/internal/errors"
)

const (
	appName   = "pokereview"
	osWindows = "windows"
)

// GetDefaultConfigPaths returns the directories searched for config.yaml.
// The working directory always comes first; if config.yaml exists in one of
// the paths, only that path is returned.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryFileIO).
			Context("operation", "get-home-directory").
			Build()
	}

	configPaths := []string{"."}
	switch runtime.GOOS {
	case osWindows:
		configPaths = append(configPaths, filepath.Join(homeDir, "AppData", "Roaming", appName))
	default:
		configPaths = append(configPaths,
			filepath.Join(homeDir, ".config", appName),
			"/etc/"+appName,
		)
	}

	for _, path := range configPaths {
		if _, err := os.Stat(filepath.Join(path, "config.yaml")); err == nil {
			return []string{path}, nil
		}
	}
	return configPaths, nil
}
