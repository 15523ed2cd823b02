// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ideation-engine/internal/session"
)

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export an archived session as json, markdown, or csv",
	Long: `Export renders an archived session in the requested format and writes
it under the export directory (or --out). Pass --out - to print to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openArchive(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sess, summary, err := store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	cfg := loadConfig()
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Export.Format
	}

	content, err := session.Render(sess, *summary, format)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "-" {
		fmt.Println(content)
		return nil
	}
	path, err := writeExport(content, sess.ID, format, out, cfg.Export.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("Exported session %s to %s\n", sess.ID, path)
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "export format: json, markdown, or csv (default from config)")
	exportCmd.Flags().StringP("out", "o", "", "output path, or - for stdout (default: export dir)")
	rootCmd.AddCommand(exportCmd)
}
