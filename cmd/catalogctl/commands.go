package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Operator tasks for the projects catalog",
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newMigrateCmd(app),
		newAdminCmd(app),
	)
	return cmd
}

func newMigrateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newAdminCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage catalog administrators",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <sso-id>",
			Short: "Grant admin rights, reactivating a deactivated admin",
			Args:  cobra.ExactArgs(1),
			RunE:  app.handleAdminAdd,
		},
		&cobra.Command{
			Use:   "deactivate <sso-id>",
			Short: "Revoke admin rights",
			Args:  cobra.ExactArgs(1),
			RunE:  app.handleAdminDeactivate,
		},
		&cobra.Command{
			Use:   "show <sso-id>",
			Short: "Show one admin",
			Args:  cobra.ExactArgs(1),
			RunE:  app.handleAdminShow,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every admin",
			Args:  cobra.NoArgs,
			RunE:  app.handleAdminList,
		},
	)
	return cmd
}

func (a *App) handleAdminAdd(cmd *cobra.Command, args []string) error {
	admins, closeFn, err := a.openAdmins(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	admin, err := admins.Grant(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("add admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s is active\n", admin.SSOID)
	return nil
}

func (a *App) handleAdminDeactivate(cmd *cobra.Command, args []string) error {
	admins, closeFn, err := a.openAdmins(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	if err := admins.Revoke(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deactivate admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "admin %s is deactivated\n", args[0])
	return nil
}

func (a *App) handleAdminShow(cmd *cobra.Command, args []string) error {
	admins, closeFn, err := a.openAdmins(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	admin, err := admins.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("show admin: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "sso_id: %s\nactive: %t\nadded:  %s\n",
		admin.SSOID, admin.IsActive, admin.AddedAt.UTC().Format(time.RFC3339))
	return nil
}

func (a *App) handleAdminList(cmd *cobra.Command, args []string) error {
	admins, closeFn, err := a.openAdmins(cmd.Context())
	if err != nil {
		return err
	}
	defer closeFn()

	list, err := admins.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SSO ID\tACTIVE\tADDED")
	for _, admin := range list {
		fmt.Fprintf(w, "%s\t%t\t%s\n", admin.SSOID, admin.IsActive, admin.AddedAt.UTC().Format(time.RFC3339))
	}
	return w.Flush()
}
