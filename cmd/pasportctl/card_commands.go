package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCardsCommand(cctx *commandContext) *cobra.Command {
	cardsCmd := &cobra.Command{
		Use:   "cards",
		Short: "Manage passport cards",
	}

	cardsCmd.AddCommand(newCardsListCommand(cctx))
	cardsCmd.AddCommand(newCardsAddCommand(cctx))
	cardsCmd.AddCommand(newCardsRenameCommand(cctx))
	cardsCmd.AddCommand(newCardsRemoveCommand(cctx))

	return cardsCmd
}

func newCardsListCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all cards",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			cards, err := st.ListCards(context.Background())
			if err != nil {
				return fmt.Errorf("list cards: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tUPDATED")
			for _, c := range cards {
				fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.UpdatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newCardsAddCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Create a new card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			card, err := st.CreateCard(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("create card: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created card %d: %s\n", card.ID, card.Name)
			return nil
		},
	}
}

func newCardsRenameCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename NAME NEW_NAME",
		Short: "Rename a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			card, err := st.FindCardByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("find card %q: %w", args[0], err)
			}
			if err := st.RenameCard(ctx, card.ID, args[1]); err != nil {
				return fmt.Errorf("rename card: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %q to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newCardsRemoveCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a card and all of its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			card, err := st.FindCardByName(ctx, args[0])
			if err != nil {
				return fmt.Errorf("find card %q: %w", args[0], err)
			}
			if err := st.DeleteCard(ctx, card.ID); err != nil {
				return fmt.Errorf("delete card: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %q\n", card.Name)
			return nil
		},
	}
}
