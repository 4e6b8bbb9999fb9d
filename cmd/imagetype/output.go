// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

type logger struct {
	err  *log.Logger
	warn *log.Logger
	info *log.Logger
}

func newLogger(w io.Writer) *logger {
	flag := log.LstdFlags | log.Lmicroseconds
	return &logger{
		err:  log.New(w, "[ERROR] ", flag),
		warn: log.New(w, "[WARN ] ", flag),
		info: log.New(w, "[INFO ] ", flag),
	}
}

func newStderrLogger() *logger {
	return newLogger(colorable.NewColorableStderr())
}

const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorRed   = "\033[31m"
)

// useColor reports whether text output to f should be colored.
func useColor(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func writeReports(w io.Writer, format string, color bool, reports []Report) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range reports {
			if err := writeText(w, color, r); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeText(w io.Writer, color bool, r Report) error {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	var err error
	switch {
	case r.Format == "":
		_, err = fmt.Fprintf(w, "%s: %s\n", r.Path, paint(colorRed, r.Error))
	case r.Error != "":
		_, err = fmt.Fprintf(w, "%s: %s %s %s\n", r.Path, paint(colorBold, r.Format), r.MIME, paint(colorRed, r.Error))
	case r.Width == 0 && r.Height == 0:
		_, err = fmt.Fprintf(w, "%s: %s %s unknown size\n", r.Path, paint(colorBold, r.Format), r.MIME)
	default:
		_, err = fmt.Fprintf(w, "%s: %s %s %dx%d\n", r.Path, paint(colorBold, r.Format), r.MIME, r.Width, r.Height)
	}
	if err != nil {
		return err
	}

	for _, s := range r.Sizes {
		if _, err := fmt.Fprintf(w, "  %s\n", s); err != nil {
			return err
		}
	}
	for _, b := range r.Boxes {
		if _, err := fmt.Fprintf(w, "  %s\n", b); err != nil {
			return err
		}
	}
	return nil
}
