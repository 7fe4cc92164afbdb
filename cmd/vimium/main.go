package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/adrg/xdg"
	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Sneaken/vimium/cmd"
	"github.com/Sneaken/vimium/internal"
	"github.com/Sneaken/vimium/internal/logger"
	"github.com/Sneaken/vimium/pkg/clipboard"
	"github.com/Sneaken/vimium/pkg/page"
)

const (
	appName     = "vimium"
	defaultSize = 4096
)

var (
	Version     = "0.1.0"
	CommitSha   = "unknown"
	FullVersion = Version + "-" + CommitSha
)

var (
	appDir     = filepath.Join(xdg.StateHome, appName)
	configPath = filepath.Join(xdg.ConfigHome, appName, "config.toml")
	// logFile is the open log, closed by closeLog before the process exits.
	logFile io.Closer
)

func init() {
	logLevel := os.Getenv("VIMIUM_LOG")
	if logLevel == "" {
		logLevel = "info"
	}

	closer, err := logger.InitLogger(filepath.Join(appDir, appName+".log"), logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
	} else {
		logFile = closer
	}

	crashFilePath := filepath.Join(appDir, "crash")
	if f, err := os.Create(crashFilePath); err == nil {
		_ = debug.SetCrashOutput(f, debug.CrashOptions{})
	}
}

// closeLog closes the log file; later records are dropped.
func closeLog() {
	if logFile == nil {
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := logFile.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "closing log: %v\n", err)
	}
	logFile = nil
}

// AppConfig holds the command line settings
type AppConfig struct {
	configFile  string
	alphabet    string
	filter      bool
	mode        string
	format      string
	clipboard   string
	url         string
	inputFile   string
	target      string
	showVersion bool
}

// pick is one activation recorded while the screen is up. Output happens
// after the screen is released.
type pick struct {
	candidate internal.Candidate
	mode      internal.Mode
}

type pickSink struct {
	picks []pick
}

func (s *pickSink) Activate(candidate internal.Candidate, mode internal.Mode) {
	slog.Info("candidate activated", "id", candidate.ID, "mode", mode, "href", candidate.Href)
	s.picks = append(s.picks, pick{candidate: candidate, mode: mode})
}

// loadDocument reads the page from the url, the input file or stdin.
func loadDocument(ctx context.Context, config *AppConfig, settings *Config) (*page.Document, error) {
	if config.url != "" {
		slog.Info("fetching page", "url", config.url, "timeout", settings.Browser.Timeout.Duration)
		return page.FetchDocument(ctx, config.url, settings.Browser.Timeout.Duration)
	}

	var reader io.Reader
	if config.inputFile != "" {
		file, err := os.Open(config.inputFile)
		if err != nil {
			return nil, fmt.Errorf("opening input file: %w", err)
		}
		defer file.Close() // nolint: errcheck
		reader = file
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("no input: pipe an HTML page to stdin or use --input-file or --url")
		}
		reader = os.Stdin
	}

	return page.Parse(bufio.NewReaderSize(reader, defaultSize))
}

// formatPick expands %H (href), %T (text) and %M (mode) in format.
func formatPick(format string, p pick) string {
	text := p.candidate.Text
	if text == "" {
		text = p.candidate.Value
	}
	replacer := strings.NewReplacer(
		"%H", p.candidate.Href,
		"%T", text,
		"%M", p.mode.String(),
	)
	return replacer.Replace(format)
}

// processPicks copies copy-url picks and returns the output for the rest.
func processPicks(picks []pick, format string, board *clipboard.Clipboard) (string, error) {
	results := make([]string, 0, len(picks))
	var errs []error

	for _, p := range picks {
		if p.mode == internal.ModeCopyURL {
			if err := board.Copy(p.candidate.Href); err != nil {
				errs = append(errs, fmt.Errorf("copying url: %w", err))
			}
			continue
		}
		results = append(results, formatPick(format, p))
	}

	if len(results) == 0 {
		return "", errors.Join(errs...)
	}
	return strings.Join(results, "\n") + "\n", errors.Join(errs...)
}

// writeOutput writes output to target file or stdout with buffering
func writeOutput(target, content string) error {
	if target == "" {
		fmt.Print(content)
		return nil
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("creating target file: %w", err)
	}
	defer file.Close() // nolint: errcheck

	writer := bufio.NewWriterSize(file, defaultSize)
	if _, err := writer.WriteString(content); err != nil {
		return fmt.Errorf("writing to target file: %w", err)
	}
	return writer.Flush()
}

// applyFlags overrides file settings with the flags given on the command line.
func applyFlags(c *cobra.Command, config *AppConfig, settings *Config) {
	flags := c.Flags()
	if flags.Changed("alphabet") {
		settings.Core.Alphabet = config.alphabet
	}
	if flags.Changed("filter") {
		settings.Core.Filter = config.filter
	}
	if flags.Changed("mode") {
		settings.Core.Mode = config.mode
	}
	if flags.Changed("format") {
		settings.Core.Format = config.format
	}
	if flags.Changed("clipboard") {
		settings.Clipboard.Targets = config.clipboard
	}
}

// present runs hinting sessions on the terminal until the user picks or
// cancels.
func present(doc *page.Document, settings *Config) ([]pick, error) {
	colors, err := settings.ViewColors()
	if err != nil {
		return nil, err
	}
	mode, err := internal.ParseMode(settings.Core.Mode)
	if err != nil {
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	view := internal.NewView(screen, colors)
	sink := &pickSink{}
	session := internal.NewSession(
		internal.SessionConfig{Alphabet: settings.Core.Alphabet, Filter: settings.Core.Filter},
		internal.StaticPageSource(doc),
		view,
		sink,
		internal.WithScheduler(internal.NewTimerScheduler(view.Post)),
		internal.WithOnEnd(func(reason internal.EndReason) {
			slog.Info("hinting ended", "reason", reason)
		}),
	)

	if err := session.Activate(mode); err != nil {
		return nil, err
	}
	view.Run(session)

	return sink.picks, nil
}

// runApp runs the main application logic
func runApp(c *cobra.Command, config *AppConfig) error {
	if config.showVersion {
		fmt.Printf("%s version: %s\n", appName, FullVersion)
		return nil
	}

	settings, err := LoadConfigFromFile(config.configFile)
	if err != nil {
		return err
	}
	applyFlags(c, config, settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	targets, err := clipboard.ParseTargets(settings.Clipboard.Targets)
	if err != nil {
		return err
	}

	doc, err := loadDocument(c.Context(), config, settings)
	if err != nil {
		return err
	}
	if len(doc.Elements) == 0 {
		slog.Info("page has no clickable elements", "title", doc.Title)
		return nil
	}

	picks, err := present(doc, settings)
	if err != nil {
		return err
	}

	output, err := processPicks(picks, settings.Core.Format, clipboard.New(clipboard.WithTargets(targets...)))
	if err != nil {
		slog.Error("clipboard copy failed", "error", err)
	}
	if output == "" {
		return err
	}
	if werr := writeOutput(config.target, output); werr != nil {
		return werr
	}
	return err
}

func newRootCommand() *cobra.Command {
	config := &AppConfig{}

	rootCmd := &cobra.Command{
		Use:   appName,
		Short: "Keyboard hints for the links of a web page",
		Long: color.New(color.FgHiMagenta).Sprintf(
			"Pick a link or form field of a web page by typing its hint. %s",
			color.New(color.FgBlue).Sprintf("(%s)", FullVersion),
		),
		Example:       "  curl -s https://example.com | vimium\n  vimium --url https://go.dev --filter --format '%T %H'",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, args []string) error {
			return runApp(c, config)
		},
	}

	defaults := NewDefaultConfig()
	rootCmd.Flags().StringVarP(&config.configFile, "config", "c", configPath, "Path of the TOML config file")
	rootCmd.Flags().StringVarP(&config.alphabet, "alphabet", "a", defaults.Core.Alphabet, "Hint characters or a builtin alphabet name")
	rootCmd.Flags().BoolVarP(&config.filter, "filter", "F", defaults.Core.Filter, "Number the links and filter them by their text")
	rootCmd.Flags().StringVarP(&config.mode, "mode", "m", defaults.Core.Mode, "Activation mode: current-tab, new-tab, copy-url or queue")
	rootCmd.Flags().StringVarP(&config.format, "format", "f", defaults.Core.Format, "Output format: %H href, %T text, %M mode")
	rootCmd.Flags().StringVar(&config.clipboard, "clipboard", defaults.Clipboard.Targets, "Clipboard targets for copy-url: system, osc52, tmux")
	rootCmd.Flags().StringVarP(&config.url, "url", "u", "", "Load the page in headless Chrome instead of reading HTML")
	rootCmd.Flags().StringVarP(&config.inputFile, "input-file", "i", "", "Read HTML from file instead of stdin")
	rootCmd.Flags().StringVarP(&config.target, "target", "t", "", "Write the output to the specified path")
	rootCmd.Flags().BoolVarP(&config.showVersion, "version", "v", false, "Print version and exit")
	rootCmd.MarkFlagsMutuallyExclusive("url", "input-file")

	rootCmd.SetHelpTemplate(cmd.HelpTemplate)
	rootCmd.SetUsageFunc(func(c *cobra.Command) error {
		return cmd.ColorUsageFunc(c.OutOrStderr(), c)
	})

	return rootCmd
}

func main() {
	err := newRootCommand().ExecuteContext(context.Background())
	if err != nil {
		slog.Error("Error executing command", "error", err)
		prefix := "error"
		var configErr *internal.ConfigurationError
		if errors.As(err, &configErr) {
			prefix = "configuration"
		}
		fmt.Fprintln(os.Stderr, color.RedString("%s: %v", prefix, err))
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}
