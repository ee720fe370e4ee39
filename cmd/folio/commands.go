package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the live document as a defaults YAML file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		data, err := content.ExportYAML(a.store.Current())
		if err != nil {
			return err
		}
		if exportOut == "" || exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOut, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		a.logger.Info("exported content", "path", exportOut, "bytes", len(data))
		return nil
	},
}

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the storage slot and reinstate built-in defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetYes {
			return errors.New("reset discards all committed edits; pass --yes to confirm")
		}
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.store.Reset(cmd.Context()); err != nil {
			return fmt.Errorf("resetting content: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "content reset to defaults")
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Commit a previously exported YAML file as the live document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading import: %w", err)
		}
		doc, err := content.ParseExport(data)
		if err != nil {
			return err
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		// Import goes through an editor session so it is audited like any commit.
		sess, err := a.editor.Open(cmd.Context(), editor.OpenRequest{PIN: a.cfg.Admin.PIN, Takeover: true})
		if err != nil {
			return err
		}
		if err := sess.Replace(doc); err != nil {
			return err
		}
		if err := a.editor.Commit(cmd.Context(), sess.ID()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d projects, %d experiments\n", len(doc.Projects), len(doc.Experiments))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the reset")
}
