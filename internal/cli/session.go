package cli

import (
	"github.com/alexanderramin/mintabi/internal/cli/formatter"
	"github.com/alexanderramin/mintabi/internal/service"
	"github.com/spf13/cobra"
)

// withSession opens a plan on a board session, runs fn, and waits for every
// write fn caused before returning. One-shot commands go through here so they
// follow the same push rules as the interactive board.
func withSession(cmd *cobra.Command, app *App, planInput string, fn func(*service.BoardSession) error) error {
	ctx := cmd.Context()
	planID, err := resolvePlanID(ctx, app, planInput)
	if err != nil {
		return err
	}
	session, err := app.Boards.Open(ctx, planID)
	if err != nil {
		return err
	}
	fnErr := fn(session)
	formatter.WhileSaving(cmd.ErrOrStderr(), app.Boards.Saving, app.Boards.Wait)
	return fnErr
}
