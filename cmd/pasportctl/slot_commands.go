package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pasport/internal/compositor"
	"pasport/internal/settings"
	"pasport/internal/slots"
	"pasport/internal/store"
	"pasport/internal/transform"
)

func newSlotCommand(cctx *commandContext) *cobra.Command {
	slotCmd := &cobra.Command{
		Use:   "slot",
		Short: "Manage slot images on a card",
	}

	slotCmd.AddCommand(newSlotSetCommand(cctx))
	slotCmd.AddCommand(newSlotClearCommand(cctx))

	return slotCmd
}

func newSlotSetCommand(cctx *commandContext) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "set CARD SLOT FILE",
		Short: "Fill a slot from an image file",
		Long: "Fill a slot from an image file. The image is scaled to cover the\n" +
			"configured output aspect, centered, and stored as PNG, the same as\n" +
			"saving from the GUI editor without any manual adjustment.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cardName, slotKey, file := args[0], args[1], args[2]
			if !slots.Valid(slotKey) {
				return fmt.Errorf("%w: %s (see 'pasportctl slots')", store.ErrUnknownSlot, slotKey)
			}

			src, err := compositor.Open(file)
			if err != nil {
				return fmt.Errorf("open image %s: %w", file, err)
			}

			w, h := cctx.cfg.OutputSize()
			if width > 0 {
				aw, ah := cctx.cfg.Aspect()
				w = width
				h = width * ah / aw
			}
			spec := compositor.OutputSpec{Width: w, Height: h}

			out, err := compositor.Render(src, transform.NewState(), spec)
			if err != nil {
				return fmt.Errorf("render image: %w", err)
			}
			png, err := compositor.EncodePNG(out)
			if err != nil {
				return fmt.Errorf("encode image: %w", err)
			}

			st, err := cctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			ctx := context.Background()
			card, err := st.FindCardByName(ctx, cardName)
			if err != nil {
				return fmt.Errorf("find card %q: %w", cardName, err)
			}
			if err := st.SetImage(ctx, card.ID, slotKey, png); err != nil {
				return fmt.Errorf("store image: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s/%s from %s (%dx%d, %d bytes)\n",
				card.Name, slotKey, file, w, h, len(png))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0,
		fmt.Sprintf("Output width in pixels, %d to %d (default from settings)",
			settings.MinOutputWidth, settings.MaxOutputWidth))
	return cmd
}

func newSlotClearCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear CARD SLOT",
		Short: "Remove the image from a slot",
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
			if err := st.SetImage(ctx, card.ID, args[1], nil); err != nil {
				return fmt.Errorf("clear slot: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s/%s\n", card.Name, args[1])
			return nil
		},
	}
}

func newSlotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List the fixed slot keys and labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tLABEL")
			for _, s := range slots.All() {
				fmt.Fprintf(w, "%s\t%s\n", s.Key, s.Label)
			}
			return w.Flush()
		},
	}
}
