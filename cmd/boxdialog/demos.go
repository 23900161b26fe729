package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cornish/boxdialog/boxcanvas"
	"github.com/cornish/boxdialog/clipboard"
	"github.com/cornish/boxdialog/dialog"
	"github.com/cornish/boxdialog/encoding"
	"github.com/cornish/boxdialog/logging"
	"github.com/cornish/boxdialog/screen"
	"github.com/cornish/boxdialog/ui"
	"github.com/spf13/cobra"
)

type boxesOpts struct {
	png   string
	print bool
}

type messageOpts struct {
	title    string
	text     string
	textFile string
	options  []string
}

type sliderOpts struct {
	title string
	text  string

	min, initial, max, step float64
}

type exploreOpts struct {
	title     string
	filter    string
	startDir  string
	mustExist bool
	copy      bool
	clipboard string
}

var (
	boxesFlags   boxesOpts
	messageFlags messageOpts
	sliderFlags  sliderOpts
	exploreFlags exploreOpts
)

var boxesCmd = &cobra.Command{
	Use:   "boxes",
	Short: "Draw overlapping boxes of every style",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBoxes(sess, boxesFlags, cmd.OutOrStdout())
	},
}

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Ask a question with a list of answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMessage(sess, messageFlags, cmd.OutOrStdout())
	},
}

var sliderCmd = &cobra.Command{
	Use:   "slider",
	Short: "Pick a number with a slider bar",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSlider(sess, sliderFlags, cmd.OutOrStdout())
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Pick a file with the file explorer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplore(sess, exploreFlags, cmd.OutOrStdout())
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Choose a demo from a message box",
	RunE:  runMenu,
}

func initDemoFlags() {
	boxesCmd.Flags().StringVar(&boxesFlags.png, "png", "", "Write the boxes to a PNG file instead of the terminal")
	boxesCmd.Flags().BoolVar(&boxesFlags.print, "print", false, "Print the boxes as colored text instead of drawing them")

	messageCmd.Flags().StringVarP(&messageFlags.title, "title", "t", "TITLE HERE", "Dialog title")
	messageCmd.Flags().StringVar(&messageFlags.text, "text", "This is the text inside the message box.", "Question shown under the title")
	messageCmd.Flags().StringVar(&messageFlags.textFile, "text-file", "", "Read the question from a file in any common encoding")
	messageCmd.Flags().StringArrayVarP(&messageFlags.options, "option", "o", []string{"OPTION 0", "OPTION 1", "OPTION 2"}, "Answer (repeatable)")

	sliderCmd.Flags().StringVarP(&sliderFlags.title, "title", "t", "TITLE HERE", "Dialog title")
	sliderCmd.Flags().StringVar(&sliderFlags.text, "text", "Use arrows to move slider below", "Text shown under the title")
	sliderCmd.Flags().Float64Var(&sliderFlags.min, "min", 1, "Lowest value")
	sliderCmd.Flags().Float64Var(&sliderFlags.initial, "initial", 5, "Starting value")
	sliderCmd.Flags().Float64Var(&sliderFlags.max, "max", 10, "Highest value")
	sliderCmd.Flags().Float64Var(&sliderFlags.step, "step", 0.5, "Distance moved by one arrow key")

	exploreCmd.Flags().StringVarP(&exploreFlags.title, "title", "t", "Please pick a .c file", "Dialog title")
	exploreCmd.Flags().StringVarP(&exploreFlags.filter, "filter", "f", "c", "Required extension (empty accepts any file)")
	exploreCmd.Flags().StringVar(&exploreFlags.startDir, "start-dir", "", "Directory to start in (default: configured or most recent)")
	exploreCmd.Flags().BoolVar(&exploreFlags.mustExist, "must-exist", true, "Only accept files that exist")
	exploreCmd.Flags().BoolVar(&exploreFlags.copy, "copy", false, "Copy the chosen path to the clipboard")
	exploreCmd.Flags().StringVar(&exploreFlags.clipboard, "clipboard", "auto", "Clipboard method: auto, system or osc52")
}

// demoCanvas stamps the demo boxes on a canvas covering s
func demoCanvas(s screen.Surface) *boxcanvas.Canvas {
	c := boxcanvas.New(s, 0, 0, boxcanvas.Auto, boxcanvas.Auto)
	c.FillStyle = screen.ColorWhite
	c.BackgroundStyle = screen.ColorGrey

	c.StampBox(10, 10, 10, 10, boxcanvas.StyleStrong)
	c.StampBox(25, 10, 10, 10, boxcanvas.StyleWeak)
	c.StampBox(40, 10, 10, 10, boxcanvas.StyleShadow)

	c.StampBox(10, 25, 50, 10, boxcanvas.StyleWindow)
	c.StampBox(10, 25, 25, 8, boxcanvas.StyleWeak)
	c.StampBox(30, 27, 10, 4, boxcanvas.BoxStyle{Shadow: true, Fill: true})
	return c
}

// Offscreen size holding every demo box
const (
	demoCols = 62
	demoRows = 36
)

func runBoxes(s *session, opts boxesOpts, w io.Writer) error {
	if opts.png != "" || opts.print {
		c := demoCanvas(screen.NewBuffer(demoCols, demoRows, true))
		defer c.Destroy()
		if opts.png != "" {
			if err := c.ExportPNG(opts.png); err != nil {
				return err
			}
			fmt.Fprintf(w, "Wrote %s\n", opts.png)
		}
		if opts.print {
			fmt.Fprintln(w, ui.RenderCanvas(c))
		}
		return nil
	}

	_, err := s.show(s.env(), func(env dialog.Env) (any, error) {
		release, ok := screen.Acquire(env.Surface)
		if !ok {
			return nil, dialog.ErrBusy
		}
		defer release()

		c := demoCanvas(env.Surface)
		c.Render(env.Surface)
		c.Destroy()
		if err := env.Surface.Flush(); err != nil {
			return nil, err
		}
		// any key closes the demo
		_, err := env.Keys.ReadKey()
		return nil, err
	})
	return err
}

// messageText returns the question, read from a file when one is given
func messageText(opts messageOpts) (string, error) {
	if opts.textFile == "" {
		return opts.text, nil
	}
	data, err := os.ReadFile(opts.textFile)
	if err != nil {
		return "", err
	}
	text, enc, err := encoding.DecodeText(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", opts.textFile, err)
	}
	logging.Default().Debug("read message text", "file", opts.textFile, "encoding", enc.Name)
	// the message box shows a single line
	return strings.Join(strings.Fields(text), " "), nil
}

func runMessage(s *session, opts messageOpts, w io.Writer) error {
	text, err := messageText(opts)
	if err != nil {
		return err
	}
	v, err := s.show(s.env(), func(env dialog.Env) (any, error) {
		return dialog.ShowMessageBox(env, opts.title, text, opts.options, s.style)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "You chose option %d\n", v.(int))
	return nil
}

func runSlider(s *session, opts sliderOpts, w io.Writer) error {
	v, err := s.show(s.env(), func(env dialog.Env) (any, error) {
		return dialog.ShowSliderBox(env, opts.title, opts.text, opts.min, opts.initial, opts.max, opts.step, s.style)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "The value is %f\n", v.(float64))
	return nil
}

type pickResult struct {
	path string
	ok   bool
}

func runExplore(s *session, opts exploreOpts, w io.Writer) error {
	method, err := clipboard.ParseMethod(opts.clipboard)
	if err != nil {
		return err
	}

	env := s.env()
	if opts.startDir != "" {
		env.StartDir = opts.startDir
	}
	v, err := s.show(env, func(env dialog.Env) (any, error) {
		p, ok, err := dialog.ShowFileExplorer(env, opts.filter, opts.title, opts.mustExist, s.style)
		return pickResult{p, ok}, err
	})
	if err != nil {
		return err
	}

	res := v.(pickResult)
	if !res.ok {
		fmt.Fprintln(w, "You did not pick a file!")
		return nil
	}
	fmt.Fprintf(w, "Path: %s\n", res.path)

	s.rememberDir(filepath.Dir(res.path))
	if opts.copy {
		cp := clipboard.New(w, method)
		if err := cp.Copy(res.path); err != nil {
			return fmt.Errorf("copying path: %w", err)
		}
		logging.Default().Debug("path copied", "method", opts.clipboard, "ssh", cp.IsSSH())
	}
	return nil
}

// rememberDir records dir as the most recent explorer directory. Only the
// default config file is rewritten.
func (s *session) rememberDir(dir string) {
	s.cfg.AddRecentDir(dir)
	if configPath != "" || s.save == nil {
		return
	}
	if err := s.save(); err != nil {
		logging.Default().Warn("saving recent directory failed", "error", err)
	}
}

// demos are the menu entries, in menu order
var demos = []struct {
	label string
	run   func(s *session, w io.Writer) error
}{
	{"Boxes", func(s *session, w io.Writer) error { return runBoxes(s, boxesOpts{}, w) }},
	{"Message box", func(s *session, w io.Writer) error { return runMessage(s, messageFlags, w) }},
	{"File explorer", func(s *session, w io.Writer) error { return runExplore(s, exploreFlags, w) }},
	{"Slider bar", func(s *session, w io.Writer) error { return runSlider(s, sliderFlags, w) }},
}

func runMenu(cmd *cobra.Command, args []string) error {
	return pickDemo(sess, cmd.OutOrStdout())
}

func pickDemo(s *session, w io.Writer) error {
	labels := make([]string, len(demos))
	for i, d := range demos {
		labels[i] = d.label
	}
	v, err := s.show(s.env(), func(env dialog.Env) (any, error) {
		return dialog.ShowMessageBox(env, "boxdialog "+version, "Pick a demo", labels, s.style)
	})
	if err != nil {
		return err
	}
	return demos[v.(int)].run(s, w)
}
