package cli

import (
	"github.com/alexanderramin/mintabi/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans     service.PlanService
	Boards    service.BoardService
	Templates service.TemplateService
	Import    service.ImportService

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "mintabi" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mintabi",
		Short:         "Collaborative travel-plan board",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newCardCmd(app),
		newDayCmd(app),
		newBoardCmd(app),
		newTemplateCmd(app),
	)

	return root
}
