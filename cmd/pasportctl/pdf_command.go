package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pasport/internal/pdf"
)

func newPDFCommand(cctx *commandContext) *cobra.Command {
	var output string
	var printFlag bool

	cmd := &cobra.Command{
		Use:   "pdf CARD",
		Short: "Export a card as an A4 PDF",
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
			images, err := st.ImagesForCard(ctx, card.ID)
			if err != nil {
				return fmt.Errorf("load images: %w", err)
			}

			path := output
			if path == "" {
				path = pdf.TempPath(card.Name)
			}
			if err := pdf.Generate(path, card.Name, images); err != nil {
				return fmt.Errorf("generate PDF: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d images)\n", path, len(images))

			if printFlag {
				if err := pdf.Print(path); err != nil {
					return fmt.Errorf("print: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Sent to printer")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default a temp file)")
	cmd.Flags().BoolVar(&printFlag, "print", false, "Send the PDF to the default printer")
	return cmd
}
