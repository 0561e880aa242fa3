package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/mintabi/internal/cli/formatter"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/alexanderramin/mintabi/internal/remote"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	filter := filterValue(domain.FilterAll)

	cmd := &cobra.Command{
		Use:   "board PLAN",
		Short: "Open the interactive board for a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("board requires an interactive terminal; use the card and day commands instead")
			}
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			session, err := app.Boards.Open(ctx, planID)
			if err != nil {
				return err
			}
			session.SetFilter(domain.CategoryFilter(filter))

			p := tea.NewProgram(newBoardModel(session, app.Boards.Saving), tea.WithAltScreen(), tea.WithContext(ctx))
			sub, err := app.Boards.Subscribe(ctx, planID, remote.Handlers{
				OnSnapshot: func(plan domain.Plan) { p.Send(snapshotMsg{plan: plan}) },
				OnNotFound: func() { p.Send(notFoundMsg{}) },
				OnError:    func(err error) { p.Send(remoteErrMsg{err: err}) },
			})
			if err != nil {
				return fmt.Errorf("subscribing to plan %s: %w", planID, err)
			}

			_, runErr := p.Run()
			sub.Close()
			formatter.WhileSaving(cmd.ErrOrStderr(), app.Boards.Saving, app.Boards.Wait)
			if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
				return runErr
			}

			if session.NotFound() {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleYellow.Render(notFoundStatus+": "+planID))
			}
			return nil
		},
	}

	cmd.Flags().Var(&filter, "filter", "initial stock filter (all|spot|food)")
	return cmd
}
