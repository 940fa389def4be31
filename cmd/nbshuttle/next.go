package main

import (
	"github.com/spf13/cobra"

	"nbshuttle/internal/names"
)

var nextTop string

func init() {
	rootCmd.AddCommand(nextSubCmd)
	rootCmd.AddCommand(nextSesCmd)
	nextSubCmd.Flags().StringVar(&nextTop, "top", string(names.RawData), "Top-level folder (rawdata or derivatives)")
	nextSesCmd.Flags().StringVar(&nextTop, "top", string(names.RawData), "Top-level folder (rawdata or derivatives)")
}

var nextSubCmd = &cobra.Command{
	Use:   "next-sub",
	Short: "Suggest the next free subject number",
	Long: `Suggest the next free subject number, padded to the width used by
the existing subjects (or inferred from the name template for an empty
project). Local and central copies are pooled when both are reachable.`,
	Args: cobra.NoArgs,
	RunE: runNextSub,
}

func runNextSub(cmd *cobra.Command, args []string) error {
	p, out, err := openProject()
	if err != nil {
		return err
	}
	sug, err := p.NextSub(names.TopLevel(nextTop))
	if err != nil {
		return err
	}
	for _, w := range sug.Warnings {
		out.Warn("%s", w)
	}
	out.Info("%s", sug.Name)
	return nil
}

var nextSesCmd = &cobra.Command{
	Use:   "next-ses <subject>",
	Short: "Suggest the next free session number for a subject",
	Args:  cobra.ExactArgs(1),
	RunE:  runNextSes,
}

func runNextSes(cmd *cobra.Command, args []string) error {
	p, out, err := openProject()
	if err != nil {
		return err
	}
	sug, err := p.NextSes(names.TopLevel(nextTop), args[0])
	if err != nil {
		return err
	}
	for _, w := range sug.Warnings {
		out.Warn("%s", w)
	}
	out.Info("%s", sug.Name)
	return nil
}
