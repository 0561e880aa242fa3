package cli

import (
	"fmt"

	"github.com/alexanderramin/mintabi/internal/board"
	"github.com/alexanderramin/mintabi/internal/cli/formatter"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/service"
	"github.com/spf13/cobra"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage the cards of a plan",
	}

	cmd.AddCommand(
		newCardAddCmd(app),
		newCardEditCmd(app),
		newCardShowCmd(app),
		newCardRemoveCmd(app),
		newCardMoveCmd(app),
	)

	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var flags cardFlags

	cmd := &cobra.Command{
		Use:   "add PLAN",
		Short: "Add a card (stock by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, args[0], func(s *service.BoardSession) error {
				card := domain.NewStockCard()
				flags.apply(cmd.Flags(), &card)
				if flags.column != "" {
					col, err := resolveColumnID(s.Snapshot(), flags.column)
					if err != nil {
						return err
					}
					card.ColumnID = col
				}
				if err := s.SaveCard(card); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added card %s %s to %s\n", formatter.Bold(card.Title), card.ID, card.ColumnID)
				return nil
			})
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newCardEditCmd(app *App) *cobra.Command {
	var flags cardFlags

	cmd := &cobra.Command{
		Use:   "edit PLAN CARD",
		Short: "Edit a card's fields (opens a form when no flags are given)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, args[0], func(s *service.BoardSession) error {
				cardID, err := resolveCardID(s.Snapshot(), args[1])
				if err != nil {
					return err
				}
				card, _ := s.Snapshot().Card(cardID)

				switch {
				case flags.changed(cmd.Flags()):
					flags.apply(cmd.Flags(), &card)
					if flags.column != "" {
						col, err := resolveColumnID(s.Snapshot(), flags.column)
						if err != nil {
							return err
						}
						card.ColumnID = col
					}
				case app.interactive():
					draft := newCardDraft(card)
					if err := cardForm(draft).Run(); err != nil {
						return err
					}
					card = draft.Card()
				default:
					return fmt.Errorf("nothing to change: pass at least one field flag")
				}

				if err := s.SaveCard(card); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved card %s %s\n", formatter.Bold(card.Title), card.ID)
				return nil
			})
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newCardShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PLAN CARD",
		Short: "Show a card with its memo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			plan, err := app.Plans.Get(ctx, planID)
			if err != nil {
				return err
			}
			snap := board.FromPlan(*plan)
			cardID, err := resolveCardID(snap, args[1])
			if err != nil {
				return err
			}
			card, _ := snap.Card(cardID)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCard(card, 72))
			return nil
		},
	}
}

func newCardRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm PLAN CARD",
		Aliases: []string{"remove"},
		Short:   "Delete a card",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, args[0], func(s *service.BoardSession) error {
				cardID, err := resolveCardID(s.Snapshot(), args[1])
				if err != nil {
					return err
				}
				if err := s.DeleteCard(cardID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %s\n", cardID)
				return nil
			})
		},
	}
}

func newCardMoveCmd(app *App) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move PLAN CARD COLUMN",
		Short: "Move a card to a column (stock, a day id, or a day number)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, args[0], func(s *service.BoardSession) error {
				snap := s.Snapshot()
				cardID, err := resolveCardID(snap, args[1])
				if err != nil {
					return err
				}
				colID, err := resolveColumnID(snap, args[2])
				if err != nil {
					return err
				}
				if err := s.MoveCard(cardID, colID, index); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Moved card %s to %s\n", cardID, colID)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&index, "index", board.End, "Position within the column (0-based; default: last)")

	return cmd
}
