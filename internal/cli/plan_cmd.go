package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/mintabi/internal/cli/formatter"
	"github.com/alexanderramin/mintabi/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage plans",
	}

	cmd.AddCommand(
		newPlanCreateCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanRenameCmd(app),
		newPlanDeleteCmd(app),
		newPlanExportCmd(app),
		newPlanImportCmd(app),
	)

	return cmd
}

func newPlanCreateCmd(app *App) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "create [TITLE]",
		Short: "Create a plan seeded from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var title string
			if len(args) == 1 {
				title = args[0]
			} else {
				if !app.interactive() {
					return fmt.Errorf("plan title is required")
				}
				names := []string{}
				if infos, err := app.Templates.List(ctx); err == nil {
					for _, t := range infos {
						names = append(names, t.Name)
					}
				}
				if err := planCreateForm(&title, &template, names).Run(); err != nil {
					return err
				}
			}

			plan, err := app.Plans.Create(ctx, title, template)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan %s %s\n", formatter.Bold(plan.Title), plan.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Template name, file, or number (default: built-in)")

	return cmd
}

func newPlanListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently visited plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				plans, err := app.Plans.List(ctx)
				if err != nil {
					return err
				}
				if len(plans) == 0 {
					fmt.Fprintln(out, "No plans found.")
					return nil
				}
				rows := make([][]string, 0, len(plans))
				for _, p := range plans {
					rows = append(rows, []string{
						formatter.Bold(p.Title),
						p.ID,
						fmt.Sprintf("%d", len(p.Cards)),
						formatter.HumanTimestamp(p.UpdatedAt),
					})
				}
				fmt.Fprint(out, formatter.RenderTable([]string{"TITLE", "ID", "CARDS", "UPDATED"}, rows))
				return nil
			}

			items, err := app.Plans.ListHistory(ctx)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(out, "No recent plans.")
				return nil
			}
			fmt.Fprint(out, formatter.FormatHistory(items))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every stored plan instead of history")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	filter := filterValue(domain.FilterAll)

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a plan's board",
		Args:  cobra.ExactArgs(1),
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
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlanShow(plan, domain.CategoryFilter(filter)))
			return nil
		},
	}

	cmd.Flags().Var(&filter, "filter", "Stock filter (all, spot, food)")

	return cmd
}

func newPlanRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID TITLE",
		Short: "Change a plan's title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Rename(ctx, planID, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed plan %s to %s\n", planID, formatter.Bold(args[1]))
			return nil
		},
	}
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a plan and forget it locally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			// An unresolvable id is still pruned from history.
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				planID = args[0]
			}

			res := app.Plans.Delete(ctx, planID)
			if res.OK() {
				fmt.Fprintf(out, "Deleted plan %s\n", planID)
				return nil
			}
			if res.HistoryErr != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: history not updated: %v\n", res.HistoryErr)
			}
			if res.RemoteErr != nil {
				fmt.Fprintf(out, "%s\n", formatter.StyleYellow.Render(
					"Removed from history, but the plan may not have been deleted: "+res.RemoteErr.Error()))
			}
			return nil
		},
	}
}

func newPlanExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Write a plan document as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			planID, err := resolvePlanID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if outPath == "" {
				return app.Import.Export(ctx, planID, cmd.OutOrStdout())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := app.Import.Export(ctx, planID, f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported plan %s to %s\n", planID, outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "Output file (default: stdout)")

	return cmd
}

func newPlanImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import plans from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.ImportBundle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d plans (%d cards, %d days)\n", len(res.Plans), res.CardCount, res.DayCount)
			for _, p := range res.Plans {
				fmt.Fprintf(out, "  %s  %s\n", formatter.Bold(p.Title), p.ID)
			}
			return nil
		},
	}
}

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Browse plan templates",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := app.Templates.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTemplateList(infos))
			return nil
		},
	})
	return cmd
}
