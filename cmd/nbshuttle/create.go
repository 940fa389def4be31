package main

import (
	"github.com/spf13/cobra"

	"nbshuttle/internal/names"
	"nbshuttle/internal/project"
)

var (
	createSubs      []string
	createSess      []string
	createDatatypes []string
	createTop       string
	createBypass    bool
)

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringSliceVar(&createSubs, "sub", nil, "Subject name(s); bare numbers get the sub- prefix")
	createCmd.Flags().StringSliceVar(&createSess, "ses", nil, "Session name(s) to create under every subject")
	createCmd.Flags().StringSliceVar(&createDatatypes, "datatype", nil, "Datatype folder(s) per session (behav, ephys, funcimg, anat) or a selector keyword")
	createCmd.Flags().StringVar(&createTop, "top", string(names.RawData), "Top-level folder (rawdata or derivatives)")
	createCmd.Flags().BoolVar(&createBypass, "bypass-validation", false, "Create the folders even when validation fails")
	_ = createCmd.MarkFlagRequired("sub")
}

var createCmd = &cobra.Command{
	Use:   "create --sub <name> [--ses <name>] [--datatype <name>]",
	Short: "Create validated subject/session/datatype folders",
	Long: `Create folders for the given subject and session names under the
project's top-level folder. Names are canonicalised (prefixing, tag
expansion) and validated against the existing project before anything is
created; when validation fails, nothing is created at all.

Examples:
  nbshuttle create --sub 001
  nbshuttle create --sub 01@TO@05 --ses 001@DATE@ --datatype behav,ephys`,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	p, out, err := openProject()
	if err != nil {
		return err
	}

	created, findings, err := p.CreateFolders(createSubs, createSess, project.CreateOptions{
		Top:              names.TopLevel(createTop),
		Datatypes:        createDatatypes,
		BypassValidation: createBypass,
	})
	if len(findings) > 0 {
		out.Findings(findings)
		if createBypass {
			out.Warn("validation failed but --bypass-validation is set; folders were created anyway")
		}
	}
	if err != nil {
		return err
	}

	for _, path := range created {
		out.Verbose("created %s", path)
	}
	out.Success("created %d folder(s)", len(created))
	return nil
}
