package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"niche-picker-be/pkg/selection"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var heading = color.New(color.FgCyan, color.Bold)

type options struct {
	policy  string
	baseURL string
	format  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sharelink",
		Short:         "Encode, decode and export industry/niche share links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.policy, "policy", "industries_only_fallback",
		"decode policy: industries_only_fallback or keep_listed")

	encode := &cobra.Command{
		Use:   "encode [selection.json]",
		Short: "Print the share query for a selection JSON file (stdin when omitted or -)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, opts)
		},
	}
	encode.Flags().StringVar(&opts.baseURL, "base-url", "", "prefix the query with this page URL")

	decode := &cobra.Command{
		Use:   "decode <query-or-url>",
		Short: "Print the selection a share link restores, as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	export := &cobra.Command{
		Use:   "export <query-or-url>",
		Short: "Print the json or csv export of a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout(), args[0], opts)
		},
	}
	export.Flags().StringVar(&opts.format, "format", "csv", "export format: csv or json")

	root.AddCommand(encode, decode, export)
	return root
}

func runEncode(stdin io.Reader, out, errOut io.Writer, args []string, opts *options) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("read selection: %w", err)
	}

	m := selection.New()
	if err := m.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("parse selection: %w", err)
	}

	heading.Fprintf(errOut, "%d industries, %d niches\n", m.Len(), m.Count())
	prefix := strings.TrimRight(opts.baseURL, "/")
	if prefix != "" {
		prefix += "/"
	}
	_, err = fmt.Fprintln(out, prefix+selection.ShareQuery(m))
	return err
}

func runDecode(out, errOut io.Writer, link string, opts *options) error {
	m := decodeLink(link, opts)
	heading.Fprintf(errOut, "Decoded with %s policy\n", selection.ParsePolicy(opts.policy))

	js, err := selection.ToJSON(m)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, js)
	return err
}

func runExport(out io.Writer, link string, opts *options) error {
	m := decodeLink(link, opts)

	var (
		body string
		err  error
	)
	switch strings.ToLower(opts.format) {
	case "csv":
		body, err = selection.ToCSV(selection.ToRows(m))
	case "json":
		body, err = selection.ToJSON(m)
		body += "\n"
	default:
		return fmt.Errorf("unknown format %q (want csv or json)", opts.format)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, body)
	return err
}

// decodeLink accepts a bare query or a whole page URL.
func decodeLink(link string, opts *options) *selection.Model {
	if i := strings.Index(link, "?"); i >= 0 {
		link = link[i+1:]
	}
	if i := strings.Index(link, "#"); i >= 0 {
		link = link[:i]
	}
	return selection.DecodeWithPolicy(selection.ParseQuery(link), selection.ParsePolicy(opts.policy))
}
