package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pasport/internal/settings"
	"pasport/internal/store"
)

// commandContext resolves the database lazily so commands that never
// touch it (help, slots) do not create one.
type commandContext struct {
	dbFlag *string
	cfg    *settings.Settings
}

func (c *commandContext) openStore() (*store.Store, error) {
	path := *c.dbFlag
	if path == "" {
		path = c.cfg.DBPath
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	return st, nil
}

func newRootCommand() *cobra.Command {
	var dbFlag string

	ctx := &commandContext{dbFlag: &dbFlag, cfg: settings.Load()}

	rootCmd := &cobra.Command{
		Use:           "pasportctl",
		Short:         "Pasport card database CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the card database (default from settings)")

	rootCmd.AddCommand(newCardsCommand(ctx))
	rootCmd.AddCommand(newSlotCommand(ctx))
	rootCmd.AddCommand(newSlotsCommand())
	rootCmd.AddCommand(newPDFCommand(ctx))

	return rootCmd
}
