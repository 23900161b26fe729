// Command boxdialog demonstrates the terminal dialogs: box drawing, a
// message box, a slider and a file explorer.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cornish/boxdialog/config"
	"github.com/cornish/boxdialog/dialog"
	"github.com/cornish/boxdialog/logging"
	"github.com/cornish/boxdialog/screen"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

var (
	configPath  string
	styleName   string
	asciiMode   bool
	backendName string

	cfg  *config.Config
	sess *session
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logging.CapturePanic(r, "command", os.Args[1:])
			logging.Flush(2 * time.Second)
			panic(r)
		}
	}()

	err := rootCmd.Execute()
	logging.Flush(2 * time.Second)
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boxdialog",
	Short: "Modal dialogs drawn with box characters",
	Long: `boxdialog shows modal dialogs on the terminal.

Without a subcommand it opens a menu of the demos. Dialog colors come from
--style or the [dialog] section of the config file.

Examples:
  boxdialog message --title Save --text "Save changes?" --option Yes --option No
  boxdialog slider --min 1 --max 10 --step 0.5
  boxdialog explore --filter go --must-exist --copy
  boxdialog boxes --print`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

// setup loads the configuration and prepares the terminal session shared by
// every subcommand
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		var loadErr *config.ConfigLoadError
		if !errors.As(err, &loadErr) {
			return err
		}
		// defaults are usable; warn and carry on
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring config %s\n", loadErr)
	}

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logging.Init(logging.Config{
		Level:     level,
		SentryDSN: cfg.Log.SentryDSN,
		Env:       cfg.Log.Env,
		Version:   version,
		LogFile:   cfg.Log.File,
	}); err != nil {
		return fmt.Errorf("logging: %w", err)
	}

	name := cfg.Dialog.Style
	if cmd.Flags().Changed("style") {
		name = styleName
	}
	style, err := dialog.ParseStyle(name)
	if err != nil {
		return err
	}

	backend := cfg.Terminal.Backend
	if cmd.Flags().Changed("backend") {
		backend = backendName
	}
	switch backend {
	case config.BackendANSI, config.BackendTcell, config.BackendTea:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", backend, config.BackendANSI, config.BackendTcell, config.BackendTea)
	}

	override := cfg.Dialog.AsciiMode
	if cmd.Flags().Changed("ascii") {
		override = &asciiMode
	}
	config.InitCapabilities()
	caps := config.GetCapabilities()
	screen.UseTrueColor = caps.ShouldUseTrueColor(cfg.Terminal.TrueColor)

	sess = newSession(cfg, style, backend, !caps.ShouldUseASCII(override))
	sess.interactive = caps.Interactive
	logging.Default().Debug("session ready",
		"backend", backend,
		"style", style.String(),
		"utf8", sess.utf8,
		"colors", caps.ColorMode.String())
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVarP(&styleName, "style", "s", "blue", "Dialog colors: grey, blue or red")
	rootCmd.PersistentFlags().BoolVar(&asciiMode, "ascii", false, "Draw boxes with code page 437 bytes instead of UTF-8")
	rootCmd.PersistentFlags().StringVar(&backendName, "backend", config.BackendANSI, "Terminal backend: ansi, tcell or tea")

	initDemoFlags()
	rootCmd.AddCommand(boxesCmd, messageCmd, sliderCmd, exploreCmd, menuCmd)
}
