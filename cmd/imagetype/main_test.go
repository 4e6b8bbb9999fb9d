// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/google/go-cmp/cmp/cmpopts"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func box(typ string, payload ...[]byte) []byte {
	body := bytes.Join(payload, nil)
	b := binary.BigEndian.AppendUint32(nil, uint32(8+len(body)))
	b = append(b, typ...)
	return append(b, body...)
}

func u32(v uint32) []byte { return binary.BigEndian.AppendUint32(nil, v) }

func heic(width, height uint32) []byte {
	return bytes.Join([][]byte{
		box("ftyp", []byte("heic"), u32(0), []byte("mif1heic")),
		box("meta", u32(0),
			box("iprp", box("ipco", box("ispe", u32(0), u32(width), u32(height)))),
		),
	}, nil)
}

func writeTestFiles(c *qt.C) string {
	dir := c.TempDir()
	img := image.NewGray(image.Rect(0, 0, 30, 20))

	var buf bytes.Buffer
	c.Assert(png.Encode(&buf, img), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "a.png"), buf.Bytes(), 0o644), qt.IsNil)

	buf.Reset()
	c.Assert(gif.Encode(&buf, img, nil), qt.IsNil)
	c.Assert(os.MkdirAll(filepath.Join(dir, "sub"), 0o755), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "sub", "b.gif"), buf.Bytes(), 0o644), qt.IsNil)

	c.Assert(os.WriteFile(filepath.Join(dir, "c.heic"), heic(640, 480), 0o644), qt.IsNil)
	c.Assert(os.WriteFile(filepath.Join(dir, "d.txt"), []byte("hello"), 0o644), qt.IsNil)

	// Two entries, 16x16 and 256x256.
	ico := []byte{0, 0, 1, 0, 2, 0}
	ico = append(ico, 16, 16, 0, 0, 1, 0, 32, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	ico = append(ico, 0, 0, 0, 0, 1, 0, 32, 0, 0, 0, 0, 0, 0, 0, 0, 0)
	c.Assert(os.WriteFile(filepath.Join(dir, "e.ico"), ico, 0o644), qt.IsNil)

	return dir
}

func runJSON(c *qt.C, args ...string) ([]Report, int) {
	var stdout bytes.Buffer
	code := run(append([]string{"-f", "json"}, args...), &stdout, newLogger(io.Discard))
	var reports []Report
	c.Assert(json.Unmarshal(stdout.Bytes(), &reports), qt.IsNil, qt.Commentf("%s", stdout.String()))
	return reports, code
}

func TestRunDirectory(t *testing.T) {
	c := qt.New(t)
	dir := writeTestFiles(c)

	reports, code := runJSON(c, "--all-sizes", dir)
	c.Assert(code, qt.Equals, 1)

	byName := make(map[string]Report)
	for _, r := range reports {
		byName[filepath.Base(r.Path)] = r
	}
	c.Assert(byName, qt.HasLen, 4)
	c.Assert(byName["a.png"], qt.DeepEquals, Report{
		Path: filepath.Join(dir, "a.png"), Format: "PNG", MIME: "image/png", Extension: "png", Width: 30, Height: 20,
	})
	c.Assert(byName["c.heic"].Format, qt.Equals, "HEIC")
	c.Assert(byName["c.heic"].Width, qt.Equals, uint32(640))
	c.Assert(byName["e.ico"].Sizes, qt.DeepEquals, []string{"16x16", "256x256"})
	c.Assert(byName["d.txt"].Format, qt.Equals, "")
	c.Assert(byName["d.txt"].Error, qt.Not(qt.Equals), "")
}

func TestRunRecursive(t *testing.T) {
	c := qt.New(t)
	dir := writeTestFiles(c)

	reports, _ := runJSON(c, "-r", dir)
	c.Assert(reports, qt.HasLen, 5)

	var gifReport Report
	for _, r := range reports {
		if r.Format == "GIF" {
			gifReport = r
		}
	}
	c.Assert(gifReport.Path, qt.Equals, filepath.Join(dir, "sub", "b.gif"))
	c.Assert(gifReport.Width, qt.Equals, uint32(30))
}

func TestRunFilesInOrder(t *testing.T) {
	c := qt.New(t)
	dir := writeTestFiles(c)

	files := []string{filepath.Join(dir, "e.ico"), filepath.Join(dir, "a.png"), filepath.Join(dir, "c.heic")}
	reports, code := runJSON(c, append([]string{"-j", "1"}, files...)...)
	c.Assert(code, qt.Equals, 0)
	c.Assert(reports, qt.HasLen, 3)
	for i, r := range reports {
		c.Assert(r.Path, qt.Equals, files[i])
	}
}

func TestRunBoxes(t *testing.T) {
	c := qt.New(t)
	dir := writeTestFiles(c)

	var stdout bytes.Buffer
	code := run([]string{"--boxes", filepath.Join(dir, "c.heic")}, &stdout, newLogger(io.Discard))
	c.Assert(code, qt.Equals, 0)

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	c.Assert(lines, qt.HasLen, 6)
	c.Assert(lines[0], qt.Contains, "HEIC image/heic 640x480")
	c.Assert(lines[1], qt.Contains, "ftyp")
	c.Assert(lines[1], qt.Contains, "heic [mif1 heic]")
	c.Assert(lines[5], qt.Contains, "      ispe")
	c.Assert(lines[5], qt.Contains, "640x480")
}

func TestRunYAML(t *testing.T) {
	c := qt.New(t)
	dir := writeTestFiles(c)

	var stdout bytes.Buffer
	code := run([]string{"-f", "yaml", filepath.Join(dir, "a.png")}, &stdout, newLogger(io.Discard))
	c.Assert(code, qt.Equals, 0)

	var reports []Report
	c.Assert(yaml.Unmarshal(stdout.Bytes(), &reports), qt.IsNil)
	c.Assert(reports, qt.HasLen, 1)
	c.Assert(reports[0].Width, qt.Equals, uint32(30))
	c.Assert(stdout.String(), qt.Contains, "mime: image/png")
}

func TestRunUsageErrors(t *testing.T) {
	c := qt.New(t)

	var logs bytes.Buffer
	c.Assert(run([]string{"-f", "xml", "a.png"}, io.Discard, newLogger(&logs)), qt.Equals, 2)
	c.Assert(logs.String(), qt.Contains, "[ERROR] ")
	c.Assert(logs.String(), qt.Contains, "invalid output format: xml")

	c.Assert(run(nil, io.Discard, newLogger(io.Discard)), qt.Equals, 2)
	c.Assert(run([]string{"--nosuchflag"}, io.Discard, newLogger(io.Discard)), qt.Equals, 2)

	logs.Reset()
	c.Assert(run([]string{"does-not-exist.png"}, io.Discard, newLogger(&logs)), qt.Equals, 1)
	c.Assert(logs.String(), qt.Contains, "get <does-not-exist.png> stat failed")
}

func TestParseArgsConfigFile(t *testing.T) {
	c := qt.New(t)

	dir := c.TempDir()
	configFile := filepath.Join(dir, "imagetype.yaml")
	c.Assert(os.WriteFile(configFile, []byte("output: yaml\njobs: 3\nrecursive: true\nboxes: true\n"), 0o644), qt.IsNil)

	conf, _, err := parseArgs([]string{"-c", configFile, "-j", "7", "x"})
	c.Assert(err, qt.IsNil)
	c.Assert(conf, qt.CmpEquals(cmpopts.IgnoreFields(Config{}, "Paths")), &Config{
		Recursive: true,
		Output:    outputYAML,
		Jobs:      7,
		Boxes:     true,
	})
	c.Assert(conf.Paths, qt.DeepEquals, []string{"x"})

	_, _, err = parseArgs([]string{"-c", filepath.Join(dir, "missing.yaml"), "x"})
	c.Assert(err, qt.ErrorMatches, "read config <.*missing.yaml> failed.*")

	c.Assert(os.WriteFile(configFile, []byte("jobs: [1"), 0o644), qt.IsNil)
	_, _, err = parseArgs([]string{"-c", configFile, "x"})
	c.Assert(err, qt.ErrorMatches, "parse config <.*> failed.*")
}

func TestParseArgsHelp(t *testing.T) {
	c := qt.New(t)

	_, flags, err := parseArgs([]string{"--help"})
	c.Assert(err, qt.Equals, flag.ErrHelp)
	c.Assert(flags.FlagUsages(), qt.Contains, "--recursive")
}

func TestWriteTextColor(t *testing.T) {
	c := qt.New(t)

	var buf bytes.Buffer
	c.Assert(writeText(&buf, true, Report{Path: "a", Format: "PNG", MIME: "image/png", Width: 1, Height: 2}), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "a: "+colorBold+"PNG"+colorReset+" image/png 1x2\n")

	buf.Reset()
	c.Assert(writeText(&buf, false, Report{Path: "a", Format: "JXR", MIME: "image/vnd.ms-photo"}), qt.IsNil)
	c.Assert(buf.String(), qt.Equals, "a: JXR image/vnd.ms-photo unknown size\n")
}
