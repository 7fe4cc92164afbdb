package main

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/Sneaken/vimium/internal"
	"github.com/Sneaken/vimium/pkg/clipboard"
)

type Config struct {
	Core      CoreConfig      `toml:"core"`
	Colors    ColorConfig     `toml:"colors"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Browser   BrowserConfig   `toml:"browser"`
}

type CoreConfig struct {
	Alphabet string `toml:"alphabet"`
	Filter   bool   `toml:"filter"`
	Mode     string `toml:"mode"`
	Format   string `toml:"format"`
}

type ColorGroup struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
}

type ColorConfig struct {
	Text     ColorGroup `toml:"text"`
	Hint     ColorGroup `toml:"hint"`
	Match    ColorGroup `toml:"match"`
	Filtered ColorGroup `toml:"filtered"`
}

type ClipboardConfig struct {
	Targets string `toml:"targets"`
}

type BrowserConfig struct {
	Timeout duration `toml:"timeout"`
}

// duration decodes TOML strings such as "30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func NewDefaultConfig() *Config {
	return &Config{
		Core: CoreConfig{
			Alphabet: "sadfjklewcmpgh",
			Filter:   false,
			Mode:     internal.ModeCurrentTab.String(),
			Format:   "%H",
		},
		Colors: ColorConfig{
			Text: ColorGroup{
				Foreground: "default",
				Background: "default",
			},
			Hint: ColorGroup{
				Foreground: "black",
				Background: "yellow",
			},
			Match: ColorGroup{
				Foreground: "red",
				Background: "yellow",
			},
			Filtered: ColorGroup{
				Foreground: "gray",
				Background: "default",
			},
		},
		Clipboard: ClipboardConfig{
			Targets: "system,osc52",
		},
		Browser: BrowserConfig{
			Timeout: duration{30 * time.Second},
		},
	}
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}

	return config, nil
}

// ViewColors parses the configured color names.
func (c *Config) ViewColors() (internal.ViewColors, error) {
	colors := internal.DefaultViewColors()
	fields := []struct {
		name string
		dst  *tcell.Color
	}{
		{c.Colors.Text.Foreground, &colors.Foreground},
		{c.Colors.Text.Background, &colors.Background},
		{c.Colors.Hint.Foreground, &colors.HintForeground},
		{c.Colors.Hint.Background, &colors.HintBackground},
		{c.Colors.Match.Foreground, &colors.MatchForeground},
		{c.Colors.Match.Background, &colors.MatchBackground},
		{c.Colors.Filtered.Foreground, &colors.HiddenForeground},
		{c.Colors.Filtered.Background, &colors.HiddenBackground},
	}
	for _, f := range fields {
		if f.name == "" {
			continue
		}
		color, err := internal.ParseColor(f.name)
		if err != nil {
			return colors, err
		}
		*f.dst = color
	}
	return colors, nil
}

// Validate checks the settings the core does not check itself.
func (c *Config) Validate() error {
	if _, err := internal.ParseMode(c.Core.Mode); err != nil {
		return err
	}
	if !c.Core.Filter {
		if err := internal.ResolveAlphabet(c.Core.Alphabet).Validate(); err != nil {
			return err
		}
	}
	if _, err := clipboard.ParseTargets(c.Clipboard.Targets); err != nil {
		return fmt.Errorf("invalid clipboard targets: %w", err)
	}
	if _, err := c.ViewColors(); err != nil {
		return err
	}
	return nil
}
