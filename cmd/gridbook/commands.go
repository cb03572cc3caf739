package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gridbook/internal/message"
	"github.com/JonMunkholm/gridbook/internal/render"
	"github.com/JonMunkholm/gridbook/internal/table"
	"github.com/JonMunkholm/gridbook/internal/ui"
)

func newShowCmd(a *app) *cobra.Command {
	var opts render.Options

	cmd := &cobra.Command{
		Use:   "show [FILE...]",
		Short: "Print each sheet as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := a.loadSheets(cmd.Context(), args)
			if err != nil {
				return err
			}
			for i, s := range sheets {
				if i > 0 {
					if _, err := a.out.Write([]byte("\n")); err != nil {
						return err
					}
				}
				if err := render.Sheet(a.out, s, opts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Null, "null", "", "text printed for absent cells")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 0, "print at most this many rows per sheet (0: all)")
	return cmd
}

func newColumnsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "columns [FILE...]",
		Short: "List the columns of each sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := a.loadSheets(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, s := range sheets {
				if err := render.Title(a.out, s.Name); err != nil {
					return err
				}
				if err := render.Columns(a.out, s.Table); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE...]",
		Short: "Check the table layout of each sheet",
		Long: `validate reports sheets without columns as errors, and sheets without
data rows or with duplicate column names as warnings. The exit status is 1
when any sheet has errors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := a.loadSheets(cmd.Context(), args)
			if err != nil {
				return err
			}

			failed := false
			for _, s := range sheets {
				var msgs message.List
				table.Validate(s.Table, &msgs)
				msgs.Add(message.Info, fmt.Sprintf("%d columns, %d data rows", s.Table.Columns().Len(), s.Table.Size()))

				if err := render.Title(a.out, s.Name); err != nil {
					return err
				}
				if err := render.Messages(a.out, &msgs); err != nil {
					return err
				}
				failed = failed || msgs.HasErrors()
			}
			if failed {
				return errInvalid
			}
			return nil
		},
	}
}

func newViewCmd(a *app) *cobra.Command {
	var null string

	cmd := &cobra.Command{
		Use:   "view [FILE...]",
		Short: "Browse the sheets interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := a.loadSheets(cmd.Context(), args)
			if err != nil {
				return err
			}
			return ui.Run(sheets, null)
		},
	}

	cmd.Flags().StringVar(&null, "null", "", "text shown for absent cells")
	return cmd
}
