package main

import (
	"errors"

	"github.com/spf13/cobra"

	"nbshuttle/internal/folders"
	"nbshuttle/internal/names"
	"nbshuttle/internal/transfer"
)

var (
	transferSubs      []string
	transferSess      []string
	transferDatatypes []string
	transferTop       string
	transferDryRun    bool
)

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().StringSliceVar(&transferSubs, "sub", nil, "Subject name(s), selector keywords or @*@ patterns")
	transferCmd.Flags().StringSliceVar(&transferSess, "ses", nil, "Session name(s), selector keywords or @*@ patterns")
	transferCmd.Flags().StringSliceVar(&transferDatatypes, "datatype", nil, "Datatype folder(s) or a selector keyword")
	transferCmd.Flags().StringVar(&transferTop, "top", string(names.RawData), "Top-level folder (rawdata or derivatives)")
	transferCmd.Flags().BoolVar(&transferDryRun, "dry-run", false, "Show what would be transferred without copying anything")
}

var transferCmd = &cobra.Command{
	Use:   "transfer <upload|download>",
	Short: "Transfer a subset of the project tree to or from the central store",
	Long: `Transfer the selected subjects, sessions and datatypes between the
local project copy and the central store, via rclone. Name arguments may be
selector keywords (all, all_sub, all_non_sub, ...) or carry @*@ wildcards
and datetime range tags.`,
	Args: cobra.ExactArgs(1),
	RunE: runTransfer,
}

func runTransfer(cmd *cobra.Command, args []string) error {
	p, out, err := openProject()
	if err != nil {
		return err
	}

	var direction transfer.Direction
	switch args[0] {
	case "upload":
		direction = transfer.Upload
	case "download":
		direction = transfer.Download
	default:
		return errors.New(`transfer direction must be "upload" or "download"`)
	}

	sel := folders.DatatypeSelector{Kind: folders.SelectAll}
	if len(transferDatatypes) > 0 {
		sel, err = folders.ResolveSelector(transferDatatypes)
		if err != nil {
			return err
		}
	}

	res, err := p.Transfer(transfer.ExecRunner{}, transfer.Request{
		Direction: direction,
		Top:       names.TopLevel(transferTop),
		SubNames:  transferSubs,
		SesNames:  transferSess,
		Selector:  sel,
		DryRun:    transferDryRun,
	})
	if err != nil {
		if res.Output != "" {
			out.Error("%s", res.Output)
		}
		return err
	}

	out.Verbose("rclone arguments: %v", res.Args)
	if res.Output != "" {
		out.Info("%s", res.Output)
	}
	out.Success("transfer %s complete (run %s)", args[0], res.RunID)
	return nil
}
