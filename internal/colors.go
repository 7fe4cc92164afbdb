package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var predefinedColors = map[string]tcell.Color{
	"black":   tcell.ColorBlack,
	"red":     tcell.ColorRed,
	"green":   tcell.ColorGreen,
	"yellow":  tcell.ColorYellow,
	"blue":    tcell.ColorBlue,
	"magenta": tcell.ColorFuchsia,
	"cyan":    tcell.ColorAqua,
	"white":   tcell.ColorWhite,
	"gray":    tcell.ColorGray,
	"default": tcell.ColorDefault,
}

// ParseColor accepts a basic color name or an #rrggbb value.
func ParseColor(name string) (tcell.Color, error) {
	if m := rgbRegex.FindStringSubmatch(name); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		return tcell.NewRGBColor(int32(r), int32(g), int32(b)), nil
	}

	lowerName := strings.ToLower(name)
	if c, ok := predefinedColors[lowerName]; ok {
		return c, nil
	}
	if c := tcell.GetColor(lowerName); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, &ConfigurationError{Field: "color", Reason: fmt.Sprintf("unknown color %q", name)}
}

// ViewColors groups the colors the hint view draws with.
type ViewColors struct {
	Foreground       tcell.Color
	Background       tcell.Color
	HintForeground   tcell.Color
	HintBackground   tcell.Color
	MatchForeground  tcell.Color
	MatchBackground  tcell.Color
	HiddenForeground tcell.Color
	HiddenBackground tcell.Color
}

// DefaultViewColors is the palette used when nothing is configured.
func DefaultViewColors() ViewColors {
	return ViewColors{
		Foreground:       tcell.ColorDefault,
		Background:       tcell.ColorDefault,
		HintForeground:   tcell.ColorBlack,
		HintBackground:   tcell.ColorYellow,
		MatchForeground:  tcell.ColorRed,
		MatchBackground:  tcell.ColorYellow,
		HiddenForeground: tcell.ColorGray,
		HiddenBackground: tcell.ColorDefault,
	}
}
