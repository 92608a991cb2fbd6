// Package config loads the settings of the huil host shell.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "huil.yaml"

type Config struct {
	Prompt             string `yaml:"Prompt"`
	ContinuationPrompt string `yaml:"ContinuationPrompt"`
	HistoryFile        string `yaml:"HistoryFile"`
	LogLevel           string `yaml:"LogLevel"`
	Echo               bool   `yaml:"Echo"`
}

func Default() Config {
	history := ".huil_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}
	return Config{
		Prompt:             "huil> ",
		ContinuationPrompt: "....> ",
		HistoryFile:        history,
		LogLevel:           "WARNING",
		Echo:               true,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, tracerr.Wrap(err)
	}
	return cfg, nil
}

func Save(path string, cfg Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	return tracerr.Wrap(ioutil.WriteFile(path, out, 0644))
}
