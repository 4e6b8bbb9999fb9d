// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bep/imagetype"
	"github.com/bep/imagetype/bmff"
	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Report is the result for one file.
type Report struct {
	Path      string   `json:"path" yaml:"path"`
	Format    string   `json:"format,omitempty" yaml:"format,omitempty"`
	MIME      string   `json:"mime,omitempty" yaml:"mime,omitempty"`
	Extension string   `json:"extension,omitempty" yaml:"extension,omitempty"`
	Width     uint32   `json:"width,omitempty" yaml:"width,omitempty"`
	Height    uint32   `json:"height,omitempty" yaml:"height,omitempty"`
	Sizes     []string `json:"sizes,omitempty" yaml:"sizes,omitempty"`
	Boxes     []string `json:"boxes,omitempty" yaml:"boxes,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

type prober struct {
	conf   *Config
	logger *logger
}

// collect expands the directories in paths to the regular files in them.
func (p *prober) collect(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		path = filepath.Clean(path)
		stat, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "get <%s> stat failed", path)
		}
		if !stat.IsDir() {
			files = append(files, path)
			continue
		}

		err = godirwalk.Walk(path, &godirwalk.Options{
			Callback: func(osPathname string, de *godirwalk.Dirent) error {
				if de.IsDir() {
					if osPathname != path && !p.conf.Recursive {
						return godirwalk.SkipThis
					}
					return nil
				}
				if de.IsRegular() {
					files = append(files, osPathname)
				}
				return nil
			},
			ErrorCallback: func(s string, err error) godirwalk.ErrorAction {
				p.logger.warn.Printf("walk on file node <%s> failed: %v", s, err)
				return godirwalk.SkipNode
			},
		})
		if err != nil {
			return nil, errors.Wrapf(err, "can not walk directory <%s>", path)
		}
	}
	return files, nil
}

// probeAll probes files using up to conf.Jobs goroutines.
// The reports are in the order of files.
func (p *prober) probeAll(ctx context.Context, files []string) ([]Report, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.conf.Jobs)

	reports := make([]Report, len(files))
	for i, filename := range files {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			reports[i] = p.probe(filename)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (p *prober) probe(filename string) Report {
	report := Report{Path: filename}

	f, err := os.Open(filename)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	defer f.Close()

	warnf := func(format string, args ...any) {
		if p.conf.Verbose {
			p.logger.warn.Printf("%s: %s", filename, fmt.Sprintf(format, args...))
		}
	}

	res, err := imagetype.Decode(imagetype.Options{
		R:                     f,
		Warnf:                 warnf,
		DisableStreamFallback: p.conf.NoStream,
	})
	if res.Format != nil {
		report.Format = res.Format.Format().String()
		report.MIME = res.Format.MIME()
		report.Extension = res.Format.Extension()
	}
	if err != nil {
		report.Error = err.Error()
		return report
	}

	report.Width, report.Height = res.Dimension.Width, res.Dimension.Height
	if p.conf.AllSizes {
		for _, d := range res.AllDimensions {
			report.Sizes = append(report.Sizes, d.String())
		}
	}

	if p.conf.Boxes {
		switch res.Format.Format() {
		case imagetype.HEIC, imagetype.AVIF:
			boxes, err := listBoxes(f, warnf)
			if err != nil {
				report.Error = errors.WithMessage(err, "read boxes").Error()
			}
			report.Boxes = boxes
		}
	}

	return report
}

// listBoxes returns one indented line per box in r.
func listBoxes(r io.ReadSeeker, warnf func(string, ...any)) ([]string, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	root, err := bmff.Parse(bmff.Options{R: r, Warnf: warnf, SkipUnknown: true})
	if err != nil {
		return nil, err
	}

	var lines []string
	err = root.Walk(func(box *bmff.Box, depth int) error {
		if depth == 0 {
			return nil
		}
		line := strings.Repeat("  ", depth-1) + box.String()
		switch rec := box.Record.(type) {
		case *bmff.SpatialExtents:
			line += fmt.Sprintf(" %dx%d", rec.Width, rec.Height)
		case *bmff.FileType:
			line += fmt.Sprintf(" %s %v", rec.MajorBrand, rec.CompatibleBrands)
		case *bmff.Handler:
			line += " " + rec.HandlerType
		case *bmff.ItemInfoEntry:
			line += fmt.Sprintf(" item %d %s", rec.ItemID, rec.ItemType)
		case *bmff.PrimaryItem:
			line += fmt.Sprintf(" item %d", rec.ItemID)
		case *bmff.ImageRotation:
			line += fmt.Sprintf(" %d°", rec.Angle)
		}
		lines = append(lines, line)
		return nil
	})
	return lines, err
}
