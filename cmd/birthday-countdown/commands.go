package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-birthday-countdown/internal/config"
	"github.com/tartampluch/go-birthday-countdown/internal/effects"
	"github.com/tartampluch/go-birthday-countdown/internal/engine"
	"github.com/tartampluch/go-birthday-countdown/internal/locale"
	"github.com/tartampluch/go-birthday-countdown/internal/tui"
	"github.com/tartampluch/go-birthday-countdown/internal/ui"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	debug       bool
	version     bool
	mute        bool
	configPath  string
	logToFile   bool
	interactive func() bool
	now         func() time.Time

	logCloser io.Closer
}

func newCLI() *cli {
	return &cli{
		logToFile:   true,
		interactive: stdoutIsTerminal,
		now:         time.Now,
	}
}

func (c *cli) close() {
	if c.logCloser != nil {
		_ = c.logCloser.Close() // Best effort close
	}
}

// session is everything a command needs once configuration is resolved.
type session struct {
	settings config.Settings
	target   engine.Target
	tr       *locale.Translator
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           config.AppCommand,
		Short:         config.CmdShortRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// The window owns no terminal, so only it mirrors logs to stdout.
			var console io.Writer
			if cmd.Parent() == nil && !c.version {
				console = cmd.OutOrStdout()
			} else if c.debug {
				console = cmd.ErrOrStderr()
			}
			c.logCloser = setupLogging(c.debug, console, c.logToFile)
			logStartupInfo()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			s, err := c.load(cmd)
			if err != nil {
				return err
			}
			return runGUI(cmd.Context(), s)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&c.debug, config.FlagDebug, false, config.FlagDescDebug)
	flags.StringVar(&c.configPath, config.FlagConfig, "", config.FlagDescConfig)
	flags.Int(config.FlagMonth, int(config.DefaultMonth), config.FlagDescMonth)
	flags.Int(config.FlagDay, config.DefaultDay, config.FlagDescDay)
	flags.String(config.FlagName, config.DefaultName, config.FlagDescName)
	flags.String(config.FlagVCard, "", config.FlagDescVCard)
	flags.String(config.FlagContact, "", config.FlagDescContact)
	flags.String(config.FlagLanguage, config.DefaultLanguage, config.FlagDescLanguage)
	flags.BoolVar(&c.mute, config.FlagMute, false, config.FlagDescMute)
	root.Flags().BoolVar(&c.version, config.FlagVersion, false, config.FlagDescVersion)

	root.AddCommand(
		c.tuiCommand(),
		c.statusCommand(),
		c.exportCommand(),
		c.versionCommand(),
	)
	return root
}

func (c *cli) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseTUI,
		Short: config.CmdShortTUI,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.interactive() {
				return errors.New(config.ErrNotTerminal)
			}
			s, err := c.load(cmd)
			if err != nil {
				return err
			}
			countdown, _ := newCountdown(s)
			m := tui.New(countdown, s.tr, s.settings, s.target, c.now())
			return tui.Run(cmd.Context(), countdown, m, tea.WithAltScreen())
		},
	}
}

func (c *cli) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseStatus,
		Short: config.CmdShortStatus,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load(cmd)
			if err != nil {
				return err
			}
			writeStatus(cmd.OutOrStdout(), s.tr, s.target, engine.Calculate(c.now(), s.target))
			return nil
		},
	}
}

func (c *cli) exportCommand() *cobra.Command {
	var output, reminder string

	cmd := &cobra.Command{
		Use:   config.CmdUseExport,
		Short: config.CmdShortExport,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.load(cmd)
			if err != nil {
				return err
			}
			opts := engine.ExportOptions{
				Summary:         s.tr.MsgData(config.TKeyEvtSummary, map[string]any{"Name": s.target.Name}),
				ReminderTrigger: reminder,
			}
			if err := engine.ExportCalendarFile(output, s.target, c.now(), opts); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), config.MsgExported, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", config.DefaultExport, config.FlagDescOutput)
	cmd.Flags().StringVar(&reminder, config.FlagReminder, "", config.FlagDescReminder)
	return cmd
}

func (c *cli) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdUseVersion,
		Short: config.CmdShortVersion,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

// load resolves configuration for cmd: defaults, then the config file, then
// the environment, then flags. A vCard overrides the configured date.
func (c *cli) load(cmd *cobra.Command) (session, error) {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return session{}, err
	}
	s, err := config.Load(v, c.configPath)
	if err != nil {
		return session{}, err
	}
	if err := s.Validate(); err != nil {
		return session{}, err
	}
	if c.mute {
		s.SoundEnabled = false
	}

	target := engine.Target{Month: s.Month, Day: s.Day, Name: s.Name}
	if s.VCard != "" {
		if target, err = engine.LoadTarget(s.VCard, s.Contact); err != nil {
			return session{}, err
		}
		s.Month, s.Day, s.Name = target.Month, target.Day, target.Name
	}

	return session{settings: s, target: target, tr: locale.New(s.Language)}, nil
}

// newCountdown builds the loop with the celebration sound attached.
func newCountdown(s session) (*engine.Countdown, *effects.BeepPlayer) {
	player := effects.NewBeepPlayer(s.settings)
	countdown := engine.NewCountdown(engine.RealClock{}, s.target, engine.OptionsFromSettings(s.settings))
	countdown.Audio = player
	return countdown, player
}

// runGUI initializes the Fyne application, wires dependencies, and blocks
// until the window closes.
func runGUI(ctx context.Context, s session) error {
	a := app.NewWithID(config.AppID)

	countdown, player := newCountdown(s)
	gui := ui.NewCountdownApp(a, ctx, s.settings, s.target, countdown, s.tr)
	gui.Volume = player
	countdown.OnSnapshot = gui.OnSnapshot

	gui.Run()
	return nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
