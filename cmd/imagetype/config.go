// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// Config holds the settings of a run.
// It can be read from a YAML file, explicit flags take precedence.
type Config struct {
	Recursive bool   `yaml:"recursive"`
	Output    string `yaml:"output"`
	Jobs      int    `yaml:"jobs"`
	AllSizes  bool   `yaml:"all_sizes"`
	Boxes     bool   `yaml:"boxes"`
	NoStream  bool   `yaml:"no_stream"`
	Verbose   bool   `yaml:"verbose"`

	Paths []string `yaml:"-"`
}

func defaultConfig() *Config {
	return &Config{
		Output: outputText,
		Jobs:   runtime.NumCPU(),
	}
}

func newFlagSet(conf *Config, configFile *string) *flag.FlagSet {
	flags := flag.NewFlagSet("imagetype", flag.ContinueOnError)
	flags.BoolVarP(&conf.Recursive, "recursive", "r", conf.Recursive, "scan directories recursively")
	flags.StringVarP(&conf.Output, "format", "f", conf.Output, "output format, one of: text, json, yaml")
	flags.IntVarP(&conf.Jobs, "jobs", "j", conf.Jobs, "max number of files read concurrently")
	flags.BoolVar(&conf.AllSizes, "all-sizes", conf.AllSizes, "list every image size of ICO files")
	flags.BoolVar(&conf.Boxes, "boxes", conf.Boxes, "list the box tree of HEIC and AVIF files")
	flags.BoolVar(&conf.NoStream, "no-stream", conf.NoStream, "only look at the first 8 KiB of each file")
	flags.BoolVarP(&conf.Verbose, "verbose", "v", conf.Verbose, "log warnings")
	flags.StringVarP(configFile, "config", "c", "", "YAML config file")
	flags.SortFlags = false
	flags.Usage = func() {}
	return flags
}

// parseArgs parses the command line into a Config.
// Values from the config file are applied first, then the flags set on the command line.
func parseArgs(args []string) (*Config, *flag.FlagSet, error) {
	var configFile string
	conf := defaultConfig()
	flags := newFlagSet(conf, &configFile)
	if err := flags.Parse(args); err != nil {
		return nil, flags, err
	}

	if configFile != "" {
		fileConf, err := loadConfig(configFile)
		if err != nil {
			return nil, flags, err
		}
		// Re-parse on top of the file values so the flags win.
		flags = newFlagSet(fileConf, &configFile)
		if err := flags.Parse(args); err != nil {
			return nil, flags, err
		}
		conf = fileConf
	}

	conf.Paths = flags.Args()
	if err := conf.validate(); err != nil {
		return nil, flags, err
	}
	return conf, flags, nil
}

func loadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "read config <%s> failed", filename)
	}
	conf := defaultConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.Wrapf(err, "parse config <%s> failed", filename)
	}
	return conf, nil
}

func (c *Config) validate() error {
	switch c.Output {
	case outputText, outputJSON, outputYAML:
	default:
		return errors.New("invalid output format: " + c.Output)
	}
	if c.Jobs <= 0 {
		c.Jobs = runtime.NumCPU()
	}
	if len(c.Paths) == 0 {
		return errors.New("no input files")
	}
	return nil
}
