package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mos234/vegetable-orders/internal/backup"
)

// ErrNotConfirmed is returned by backup import without --yes.
var ErrNotConfirmed = errors.New("restore replaces all existing data; rerun with --yes")

func newBackupCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{Use: "backup", Short: "Export, restore and archive snapshots"}

	var outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of all suppliers and orders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			snap, err := c.Backup.Export(cmd.Context())
			if err != nil {
				return err
			}
			if outPath == "" {
				return backup.Encode(cmd.OutOrStdout(), snap)
			}
			if outPath == "-" {
				outPath = backup.Filename(time.Now())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := backup.Encode(f, snap); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d suppliers, %d orders)\n", outPath, snap.Stats.SuppliersCount, snap.Stats.OrdersCount)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (- for the default file name, empty for stdout)")

	var confirmed bool
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all data with a snapshot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			out := cmd.OutOrStdout()
			if !confirmed {
				preview, err := c.Backup.Preview(cmd.Context(), raw)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "current:  %d suppliers, %d orders\n", preview.Current.SuppliersCount, preview.Current.OrdersCount)
				_, _ = fmt.Fprintf(out, "incoming: %d suppliers, %d orders\n", preview.Incoming.SuppliersCount, preview.Incoming.OrdersCount)
				if preview.ExportDate != nil {
					_, _ = fmt.Fprintf(out, "exported: %s\n", preview.ExportDate.Local().Format(time.DateTime))
				}
				return ErrNotConfirmed
			}
			counts, err := c.Backup.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "restored %d suppliers, %d orders\n", counts.SuppliersCount, counts.OrdersCount)
			return nil
		},
	}
	importCmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "confirm replacing all existing data")

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Store a snapshot in the blob store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()
			info, err := c.Backup.Archive(cmd.Context(), c.Blobs)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "archived %s (%d bytes, %s)\n", info.Key, info.Size, c.Blobs.Driver())
			return nil
		},
	}

	cmd.AddCommand(exportCmd, importCmd, archiveCmd)
	return cmd
}

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
