// nolint:errcheck
package cmd

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	titleStyle       = color.New(color.Bold, color.FgHiWhite)
	commandStyle     = color.New(color.FgHiGreen)
	descriptionStyle = color.New(color.FgHiCyan)
	exampleStyle     = color.New(color.FgHiCyan)
	flagStyle        = color.New(color.Bold, color.FgHiCyan)
	tipStyle         = color.New(color.FgHiYellow)
	linkStyle        = color.New(color.FgYellow)
)

const projectURL = "https://github.com/Sneaken/vimium"

// HelpTemplate prints the long description, the coloured usage and the
// project link.
var HelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{if or .Runnable .HasSubCommands}}{{.UsageString}}{{end}}` + titleStyle.Sprint("GitHub:") + linkStyle.Sprintln("\t\t"+projectURL)

var (
	reWithShort = regexp.MustCompile(`^( {2,})(-[a-zA-Z]), (--[a-zA-Z0-9-]+)(.*)$`)
	reLongOnly  = regexp.MustCompile(`^( {2,})(--[a-zA-Z0-9-]+)(.*)$`)
)

// colorFlags highlights the flag names of a pflag usage block. Only the
// shorthand is coloured when a flag has one.
func colorFlags(raw string) []byte {
	var out bytes.Buffer

	for _, line := range strings.Split(raw, "\n") {
		if m := reWithShort.FindStringSubmatch(line); m != nil {
			out.WriteString(m[1])
			flagStyle.Fprint(&out, m[2])
			out.WriteString(", " + m[3] + m[4])
		} else if m := reLongOnly.FindStringSubmatch(line); m != nil {
			out.WriteString(m[1])
			flagStyle.Fprint(&out, m[2])
			out.WriteString(m[3])
		} else {
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}

	return out.Bytes()
}

func section(buf *bytes.Buffer, title string) {
	fmt.Fprint(buf, "\n\n")
	titleStyle.Fprint(buf, title)
}

func commandList(buf *bytes.Buffer, cmds []*cobra.Command, path bool) {
	for _, sub := range cmds {
		name, padding := sub.Name(), sub.NamePadding()
		if path {
			name, padding = sub.CommandPath(), sub.CommandPathPadding()
		}
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprintf(buf, "%-*s", padding, name)
		fmt.Fprint(buf, " ")
		descriptionStyle.Fprint(buf, sub.Short)
	}
}

func trimRightSpace(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// ColorUsageFunc writes the usage of cmd with coloured sections and flags.
func ColorUsageFunc(w io.Writer, cmd *cobra.Command) error {
	buf := &bytes.Buffer{}

	titleStyle.Fprint(buf, "Usage:")
	if cmd.Runnable() {
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprint(buf, cmd.UseLine())
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprintf(buf, "%s [command]", cmd.CommandPath())
	}

	if len(cmd.Aliases) > 0 {
		section(buf, "Aliases:")
		fmt.Fprint(buf, "\n  ")
		commandStyle.Fprint(buf, strings.Join(cmd.Aliases, ", "))
	}

	if cmd.HasExample() {
		section(buf, "Examples:")
		fmt.Fprint(buf, "\n")
		exampleStyle.Fprint(buf, cmd.Example)
	}

	if cmd.HasAvailableSubCommands() {
		var available []*cobra.Command
		for _, sub := range cmd.Commands() {
			if sub.IsAvailableCommand() || sub.Name() == "help" {
				available = append(available, sub)
			}
		}
		section(buf, "Available Commands:")
		commandList(buf, available, false)
	}

	if cmd.HasAvailableLocalFlags() {
		section(buf, "Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(cmd.LocalFlags().FlagUsages())))
	}

	if cmd.HasAvailableInheritedFlags() {
		section(buf, "Global Flags:")
		fmt.Fprint(buf, "\n")
		buf.Write(colorFlags(trimRightSpace(cmd.InheritedFlags().FlagUsages())))
	}

	if cmd.HasHelpSubCommands() {
		var topics []*cobra.Command
		for _, sub := range cmd.Commands() {
			if sub.IsAdditionalHelpTopicCommand() {
				topics = append(topics, sub)
			}
		}
		section(buf, "Additional help topics:")
		commandList(buf, topics, true)
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprint(buf, "\n\n")
		tipStyle.Fprintf(buf, "Use \"%s [command] --help\" for more information about a command.", cmd.CommandPath())
	}

	fmt.Fprintln(buf)

	_, err := w.Write(buf.Bytes())
	return err
}
