// Package config handles application configuration and setup
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/log"
)

// SuiteConfigFile is the file name of a parity suite configuration.
const SuiteConfigFile = "config.json"

const defaultCasesFile = "test_cases.txt"

// Suite describes a parity suite: a list of encodings and the output the
// reference tool prints for them.
type Suite struct {
	Name          string   `json:"name" jsonschema:"title=Name,description=Suite name"`
	CasesFile     string   `json:"cases_file,omitempty" jsonschema:"title=Cases File,description=Test case file relative to the suite directory,default=test_cases.txt"`
	RobustoneArch string   `json:"robustone_arch" jsonschema:"title=Architecture,description=Architecture spec passed to robustone"`
	CstoolArch    string   `json:"cstool_arch,omitempty" jsonschema:"title=Cstool Architecture,description=Architecture spec of the reference tool"`
	CstoolFlags   []string `json:"cstool_flags,omitempty" jsonschema:"title=Cstool Flags,description=Extra flags passed to the reference tool"`
	Description   string   `json:"description,omitempty"`

	// Dir is the directory that contains the configuration file.
	Dir string `json:"-"`
}

// CasesPath returns the path of the test case file of the suite.
func (s Suite) CasesPath() string {
	return filepath.Join(s.Dir, s.CasesFile)
}

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// LoadSuite reads a suite configuration. The path can either point to the
// configuration file or to the directory that contains it.
func LoadSuite(path string) (Suite, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Suite{}, fmt.Errorf("reading suite path: %w", err)
	}
	if info.IsDir() {
		path = filepath.Join(path, SuiteConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("reading suite config: %w", err)
	}

	var suite Suite
	if err := json.Unmarshal(data, &suite); err != nil {
		return Suite{}, fmt.Errorf("parsing suite config '%s': %w", path, err)
	}
	if suite.RobustoneArch == "" {
		return Suite{}, errors.New("suite config is missing robustone_arch")
	}
	if suite.CasesFile == "" {
		suite.CasesFile = defaultCasesFile
	}
	if suite.Name == "" {
		suite.Name = filepath.Base(filepath.Dir(path))
	}
	suite.Dir = filepath.Dir(path)
	return suite, nil
}
