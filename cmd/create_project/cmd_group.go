package main

import (
	"github.com/spf13/cobra"

	"github.com/naccdata/flywheel-extensions/internal/naming"
	"github.com/naccdata/flywheel-extensions/usecase/group"
)

func newCmdGroup() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "group",
		Short:         "Manage Flywheel groups",
		RunE:          func(cmd *cobra.Command, args []string) error { return cmd.Help() },
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newCmdGroupGet())
	cmd.AddCommand(newCmdGroupEnsure())
	return cmd
}

func buildGroupUseCase(cmd *cobra.Command) (*group.UseCase, error) {
	repos, err := buildRepos(cmd, "")
	if err != nil {
		return nil, err
	}
	return &group.UseCase{Repos: &group.Repos{Group: repos.Group}}, nil
}

func newCmdGroupGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildGroupUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := uc.Get(ctx, &group.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Group)
		},
	}
}

func newCmdGroupEnsure() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ensure <label>",
		Short: "Create a group unless it exists; the id is derived from the label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildGroupUseCase(cmd)
			if err != nil {
				return err
			}
			id, _ := cmd.Flags().GetString("id")
			if id == "" {
				id = naming.Slugify(args[0])
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := uc.Ensure(ctx, &group.EnsureInput{ID: id, Label: args[0], DryRun: dryRun})
			if err != nil {
				return err
			}
			return printJSON(cmd, out)
		},
	}
	cmd.Flags().String("id", "", "Group id (default: slug of the label)")
	cmd.Flags().Bool("dry-run", false, "Report without creating")
	return cmd
}
