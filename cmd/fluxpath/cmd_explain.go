package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/viant/fluxpath/model/path"
)

type explainFlags struct {
	markdown    bool
	separator   string
	defaultGate string
}

func newExplainCmd() *cobra.Command {
	flags := &explainFlags{}
	cmd := &cobra.Command{
		Use:   "explain PATH",
		Short: "Show how an itinerary resolves: stations, gates, trace and data flow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var options []path.Option
			if flags.separator != "" {
				options = append(options, path.WithSeparator(flags.separator))
			}
			if flags.defaultGate != "" {
				options = append(options, path.WithDefaultGate(flags.defaultGate))
			}
			logical, err := path.Parse(args[0], options...)
			if err != nil {
				return err
			}
			return explain(cmd.OutOrStdout(), logical, flags.markdown)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&flags.markdown, "markdown", false, "render tables as Markdown")
	f.StringVar(&flags.separator, "separator", "", "token separator")
	f.StringVar(&flags.defaultGate, "default-gate", "", "gate of tokens without a suffix")
	return cmd
}

func explain(w io.Writer, logical *path.Logical, markdown bool) error {
	fmt.Fprintf(w, "Notation: %s\n", logical.Notation())
	fmt.Fprintf(w, "Physical: %s\n", logical.PhysicalPath().Repr())
	fmt.Fprintf(w, "Gates:    %s\n\n", logical.GatesPath().Repr())

	trace := newTable(markdown)
	trace.AppendHeader(table.Row{"Group", "Nodes", "Predecessors"})
	for i, group := range logical.Nodes() {
		trace.AppendRow(table.Row{i, slots(group.Flatten()), slots(logical.DataTrace()[i])})
	}
	fmt.Fprintln(w, render(trace, markdown))
	fmt.Fprintln(w)

	flow := newTable(markdown)
	flow.AppendHeader(table.Row{"#", "Token", "Station", "Gate", "Inputs", "Outputs"})
	for i, token := range logical.Tokens() {
		flow.AppendRow(table.Row{i, token, logical.Physical(i), logical.Gate(i),
			strings.Join(logical.InputsOf(token), ", "), strings.Join(logical.OutputsOf(token), ", ")})
	}
	_, err := fmt.Fprintln(w, render(flow, markdown))
	return err
}

// slots joins tokens showing placeholders as "-"
func slots(tokens []string) string {
	ret := make([]string, len(tokens))
	for i, token := range tokens {
		ret[i] = token
		if token == path.NoPredecessor {
			ret[i] = "-"
		}
	}
	return strings.Join(ret, ", ")
}

func newTable(markdown bool) table.Writer {
	ret := table.NewWriter()
	if !markdown {
		ret.SetStyle(table.StyleLight)
	}
	return ret
}

func render(writer table.Writer, markdown bool) string {
	if markdown {
		return writer.RenderMarkdown()
	}
	return writer.Render()
}
