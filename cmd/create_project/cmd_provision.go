package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/naccdata/flywheel-extensions/config/projectcfg"
	"github.com/naccdata/flywheel-extensions/usecase/project"
)

func newCmdProvision() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provision <project-file>",
		Short: "Create the groups and projects of every program in a project file",
		Long: "Create the groups and projects of every program in a project file.\n\n" +
			"Existing containers are left alone. The API key is read from " + envAPIKey + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cleanup := withCmdRunLogger(cmd.Context(), "project.provision", args[0])
			defer func() { cleanup(err) }()

			roots, err := projectcfg.Load(args[0])
			if err != nil {
				return err
			}
			programs, err := projectcfg.ToModels(roots)
			if err != nil {
				return err
			}
			repos, err := buildRepos(cmd, "")
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(ctx, commandTimeout(cmd))
			defer cancel()

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			uc := &project.UseCase{Repos: &project.Repos{Group: repos.Group, Project: repos.Project}}
			out, err := uc.Provision(ctx, &project.ProvisionInput{Programs: programs, DryRun: dryRun})
			if out != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(out); encErr != nil && err == nil {
					err = encErr
				}
			}
			return err
		},
	}
	cmd.Flags().BoolP("dry-run", "d", false, "Check the project file and report what would be created")
	return cmd
}
