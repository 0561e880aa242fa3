package cli

import (
	"fmt"

	"github.com/alexanderramin/mintabi/internal/service"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Manage the day columns of a plan",
	}

	cmd.AddCommand(
		newDayAddCmd(app),
		newDayDateCmd(app),
		newDayMemoCmd(app),
		newDayTitleCmd(app),
	)

	return cmd
}

func newDayAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add PLAN",
		Short: "Append a day column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, args[0], func(s *service.BoardSession) error {
				day, err := s.AddDay()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", day.Title, day.ID)
				return nil
			})
		},
	}
}

// editDay runs one local day edit and pushes it the way a blur would.
func editDay(cmd *cobra.Command, app *App, args []string, edit func(s *service.BoardSession, dayID string) error) error {
	return withSession(cmd, app, args[0], func(s *service.BoardSession) error {
		dayID, err := resolveDayID(s.Snapshot(), args[1])
		if err != nil {
			return err
		}
		if err := edit(s, dayID); err != nil {
			return err
		}
		s.BlurDay()
		day, _ := s.Snapshot().Column(dayID)
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", day.Title, day.DateLabel)
		return nil
	})
}

func newDayDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "date PLAN DAY YYYY-MM-DD",
		Short: "Set a day's date",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDay(cmd, app, args, func(s *service.BoardSession, dayID string) error {
				return s.SetDayDate(dayID, args[2])
			})
		},
	}
}

func newDayMemoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "memo PLAN DAY TEXT",
		Short: "Set a day's memo",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDay(cmd, app, args, func(s *service.BoardSession, dayID string) error {
				return s.EditDayMemo(dayID, args[2])
			})
		},
	}
}

func newDayTitleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "title PLAN DAY TITLE",
		Short: "Rename a day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editDay(cmd, app, args, func(s *service.BoardSession, dayID string) error {
				return s.EditDayTitle(dayID, args[2])
			})
		},
	}
}
