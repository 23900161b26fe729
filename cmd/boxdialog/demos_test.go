package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/cornish/boxdialog/config"
	"github.com/cornish/boxdialog/dialog"
	"github.com/cornish/boxdialog/screen"
)

// testSession runs every dialog on one 80x24 buffer fed by keys
func testSession(keys ...screen.Key) (*session, *screen.Buffer, *screen.KeyScript) {
	buf := screen.NewBuffer(80, 24, true)
	ks := screen.NewKeyScript(keys...)
	s := &session{
		cfg:     config.DefaultConfig(),
		style:   dialog.StyleGrey,
		backend: config.BackendANSI,
		utf8:    true,
		open: func() (*terminal, error) {
			return &terminal{surface: buf, keys: ks, close: func() error { return nil }}, nil
		},
	}
	return s, buf, ks
}

var sgr = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestRunMessage(t *testing.T) {
	s, buf, _ := testSession(screen.Down, screen.Enter)
	opts := messageOpts{title: "Save", text: "Save changes?", options: []string{"Yes", "No"}}

	var out bytes.Buffer
	if err := runMessage(s, opts, &out); err != nil {
		t.Fatalf("runMessage() error = %v", err)
	}
	if got, want := out.String(), "You chose option 1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if buf.Locked() {
		t.Error("surface still locked")
	}
}

func TestRunMessageTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "question.txt")
	if err := os.WriteFile(path, []byte("Save\nchanges?\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := messageText(messageOpts{text: "unused", textFile: path})
	if err != nil {
		t.Fatalf("messageText() error = %v", err)
	}
	if got != "Save changes?" {
		t.Errorf("messageText() = %q, want %q", got, "Save changes?")
	}

	if _, err := messageText(messageOpts{textFile: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Error("messageText() with a missing file should fail")
	}
}

func TestRunSlider(t *testing.T) {
	s, _, _ := testSession(screen.Right, screen.Enter)
	opts := sliderOpts{title: "T", text: "M", min: 1, initial: 5, max: 10, step: 0.5}

	var out bytes.Buffer
	if err := runSlider(s, opts, &out); err != nil {
		t.Fatalf("runSlider() error = %v", err)
	}
	if got, want := out.String(), "The value is 5.500000\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRunSliderInvalid(t *testing.T) {
	s, _, _ := testSession(screen.Enter)
	opts := sliderOpts{min: 10, initial: 5, max: 1, step: 1}
	if err := runSlider(s, opts, &bytes.Buffer{}); err == nil {
		t.Error("runSlider() with min > max should fail")
	}
}

func TestRunExplore(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.c"), []byte("int main;"), 0644); err != nil {
		t.Fatal(err)
	}

	// entry 0 is "..", entry 1 is main.c
	s, _, _ := testSession(screen.Right, screen.Enter)
	opts := exploreOpts{title: "Pick", filter: "c", startDir: dir, mustExist: true, clipboard: "auto"}

	var out bytes.Buffer
	if err := runExplore(s, opts, &out); err != nil {
		t.Fatalf("runExplore() error = %v", err)
	}
	want := "Path: " + filepath.ToSlash(filepath.Join(dir, "main.c")) + "\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if len(s.cfg.RecentDirs) == 0 || s.cfg.RecentDirs[0] != dir {
		t.Errorf("RecentDirs = %v, want %s first", s.cfg.RecentDirs, dir)
	}
}

func TestRunExploreCancelled(t *testing.T) {
	s, _, _ := testSession(screen.Escape)
	opts := exploreOpts{title: "Pick", filter: "c", startDir: t.TempDir(), clipboard: "auto"}

	var out bytes.Buffer
	if err := runExplore(s, opts, &out); err != nil {
		t.Fatalf("runExplore() error = %v", err)
	}
	if got, want := out.String(), "You did not pick a file!\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if len(s.cfg.RecentDirs) != 0 {
		t.Errorf("cancelled pick recorded %v", s.cfg.RecentDirs)
	}
}

func TestRunExploreBadClipboard(t *testing.T) {
	s, _, ks := testSession(screen.Escape)
	if err := runExplore(s, exploreOpts{clipboard: "xclip"}, &bytes.Buffer{}); err == nil {
		t.Error("runExplore() with an unknown clipboard method should fail")
	}
	if ks.Remaining() != 1 {
		t.Error("explorer opened despite the bad flag")
	}
}

func TestRunBoxesPrint(t *testing.T) {
	var out bytes.Buffer
	if err := runBoxes(nil, boxesOpts{print: true}, &out); err != nil {
		t.Fatalf("runBoxes() error = %v", err)
	}
	lines := strings.Split(sgr.ReplaceAllString(out.String(), ""), "\n")
	if len(lines) < demoRows {
		t.Fatalf("printed %d lines, want %d", len(lines), demoRows)
	}
	want := strings.Repeat(" ", 10) + "╔════════╗     ┌────────┐"
	if !strings.HasPrefix(lines[10], want) {
		t.Errorf("row 10 = %q, want prefix %q", lines[10], want)
	}
}

func TestRunBoxesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxes.png")
	var out bytes.Buffer
	if err := runBoxes(nil, boxesOpts{png: path}, &out); err != nil {
		t.Fatalf("runBoxes() error = %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("PNG not written: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("output = %q, want the file name", out.String())
	}
}

func TestRunBoxesOnSurface(t *testing.T) {
	s, buf, ks := testSession(screen.Rune('q'))
	if err := runBoxes(s, boxesOpts{}, &bytes.Buffer{}); err != nil {
		t.Fatalf("runBoxes() error = %v", err)
	}
	if got := buf.Text(10, 10, 10); got != "╔════════╗" {
		t.Errorf("strong box top = %q", got)
	}
	if ks.Remaining() != 0 || buf.Locked() {
		t.Error("boxes demo should consume one key and release the surface")
	}
}

func TestPickDemo(t *testing.T) {
	// menu: Down x3 picks the slider, then accept its default
	s, _, _ := testSession(screen.Down, screen.Down, screen.Down, screen.Enter, screen.Enter)
	sliderFlags = sliderOpts{title: "T", text: "M", min: 1, initial: 5, max: 10, step: 0.5}

	var out bytes.Buffer
	if err := pickDemo(s, &out); err != nil {
		t.Fatalf("pickDemo() error = %v", err)
	}
	if got, want := out.String(), "The value is 5.000000\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestShowWithoutTerminal(t *testing.T) {
	for _, backend := range []string{config.BackendANSI, config.BackendTcell} {
		s := newSession(config.DefaultConfig(), dialog.StyleBlue, backend, true)
		err := runMessage(s, messageOpts{title: "T", text: "M", options: []string{"OK"}}, &bytes.Buffer{})
		if !errors.Is(err, errNotTerminal) {
			t.Errorf("%s: runMessage() error = %v, want errNotTerminal", backend, err)
		}
	}
}
