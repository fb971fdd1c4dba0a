// posctl administers the persisted slot of a pos-server installation
// directly on disk: seeding demo data, exporting the current state and
// importing a previously exported document.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cafebonheur/pos/internal/storage/slot"
	"github.com/cafebonheur/pos/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dir, slotName string

	root := &cobra.Command{
		Use:           "posctl",
		Short:         "Administer the POS persisted slot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dir, "dir", "./data", "directory holding the slot file")
	root.PersistentFlags().StringVar(&slotName, "slot-name", "pos-storage", "name of the slot")

	root.AddCommand(
		newSeedCmd(&dir, &slotName),
		newExportCmd(&dir, &slotName),
		newImportCmd(&dir, &slotName),
	)

	return root
}

func newSeedCmd(dir, slotName *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace the slot contents with the demo data set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := slot.NewFileSlot(*dir, *slotName)
			if err != nil {
				return fmt.Errorf("create file slot: %w", err)
			}

			if err := slot.WriteState(cmd.Context(), s, store.SeedState()); err != nil {
				return fmt.Errorf("write seed state: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %s\n", s.Path())
			return nil
		},
	}
}

func newExportCmd(dir, slotName *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the slot contents as indented JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := slot.NewFileSlot(*dir, *slotName)
			if err != nil {
				return fmt.Errorf("create file slot: %w", err)
			}

			state, err := slot.ReadState(cmd.Context(), s)
			if err != nil {
				return fmt.Errorf("read state: %w", err)
			}
			if state == nil {
				return fmt.Errorf("slot %s holds no persisted state", s.Path())
			}

			data, err := json.MarshalIndent(state, "", "  ")
			if err != nil {
				return fmt.Errorf("encode state: %w", err)
			}
			data = append(data, '\n')

			if out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "-", "output file, or - for stdout")

	return cmd
}

func newImportCmd(dir, slotName *string) *cobra.Command {
	var in string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the slot contents with a previously exported document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}

			var state store.State
			if err := json.Unmarshal(data, &state); err != nil {
				return fmt.Errorf("decode import file: %w", err)
			}

			s, err := slot.NewFileSlot(*dir, *slotName)
			if err != nil {
				return fmt.Errorf("create file slot: %w", err)
			}

			if err := slot.WriteState(cmd.Context(), s, state); err != nil {
				return fmt.Errorf("write state: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %s into %s\n", in, s.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
