// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Command imagetype prints the format, MIME type and size of image files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	flag "github.com/spf13/pflag"
	"gopkg.in/vrecan/death.v3"
)

func printUsage(flags *flag.FlagSet) {
	fmt.Println("Usage:")
	fmt.Printf("\t%v [options] /path/to/image/or/dir ...\n", filepath.Base(os.Args[0]))
	fmt.Println()
	fmt.Println("Options:")
	fmt.Print(flags.FlagUsages())
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, newStderrLogger()))
}

// run runs the command and returns the exit code.
func run(args []string, stdout io.Writer, logger *logger) int {
	conf, flags, err := parseArgs(args)
	if err == flag.ErrHelp {
		printUsage(flags)
		return 0
	} else if err != nil {
		logger.err.Println(err)
		return 2
	}

	ctx, abort := context.WithCancel(context.Background())
	defer abort()

	hook := death.NewDeath(syscall.SIGINT, syscall.SIGTERM)
	go hook.WaitForDeathWithFunc(abort)

	p := &prober{conf: conf, logger: logger}

	files, err := p.collect(conf.Paths)
	if err != nil {
		logger.err.Println(err)
		return 1
	}
	if conf.Verbose {
		logger.info.Printf("probing %d files with %d jobs", len(files), conf.Jobs)
	}

	reports, err := p.probeAll(ctx, files)
	if err != nil {
		logger.err.Println(err)
		return 1
	}

	color := false
	if f, ok := stdout.(*os.File); ok && conf.Output == outputText {
		color = useColor(f)
	}
	if err := writeReports(stdout, conf.Output, color, reports); err != nil {
		logger.err.Println(err)
		return 1
	}

	for _, r := range reports {
		if r.Error != "" {
			return 1
		}
	}
	return 0
}
