// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/lapsed-patents/internal/patentid"
)

var linkCmd = &cobra.Command{
	Use:   "link [patent numbers...]",
	Short: "Canonicalize patent numbers and print lookup URLs",
	Long: `Link reduces raw U.S. patent numbers ("7,654,321", "D123456",
"RE045821", "12 440 146") to their canonical US-prefixed form and prints the
lookup URL for each. Numbers that cannot be recognized get the generic
fallback page.

Quote numbers that contain spaces.`,
	Example: `  lapsed-patents link 7654321 D123456 "12 440 146"
  lapsed-patents link --mode search RE045821 --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLink,
}

func init() {
	addLinkFlags(linkCmd.Flags())
	_ = viper.BindPFlag("links.mode", linkCmd.Flags().Lookup("mode"))

	rootCmd.AddCommand(linkCmd)
}

func addLinkFlags(flags *pflag.FlagSet) {
	flags.String("mode", "", "link mode: record or search (overrides links.mode)")
	flags.Bool("json", false, "output links as JSON")
}

func runLink(cmd *cobra.Command, args []string) error {
	linker, err := patentid.NewLinker(cfg.Links)
	if err != nil {
		return err
	}

	links := make([]patentid.Link, 0, len(args))
	for _, raw := range args {
		l := linker.Link(raw)
		if l.Fallback {
			warnf(cmd.ErrOrStderr(), "%q is not a recognized patent number; using %s", raw, l.URL)
		}
		links = append(links, l)
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(links); err != nil {
			return fmt.Errorf("encoding links: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INPUT\tKIND\tCANONICAL\tURL")
	for _, l := range links {
		canonical := l.Identifier.Canonical
		if l.Fallback {
			canonical = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", l.Identifier.Raw, l.Identifier.Kind, canonical, l.URL)
	}
	return tw.Flush()
}
