package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/usecase/project"
)

func newCmdProject() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "project",
		Short:         "Manage Flywheel projects",
		RunE:          func(cmd *cobra.Command, args []string) error { return cmd.Help() },
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newCmdProjectCreate())
	cmd.AddCommand(newCmdProjectGet())
	cmd.AddCommand(newCmdProjectList())
	return cmd
}

func buildProjectUseCase(cmd *cobra.Command) (*project.UseCase, error) {
	repos, err := buildRepos(cmd, "")
	if err != nil {
		return nil, err
	}
	return &project.UseCase{Repos: &project.Repos{Group: repos.Group, Project: repos.Project}}, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout(cmd))
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitProjectPath parses "<group>/<label>".
func splitProjectPath(path string) (string, string, error) {
	group, label, ok := strings.Cut(path, "/")
	if !ok || group == "" || label == "" {
		return "", "", fmt.Errorf("invalid project path %q: expected <group>/<label>", path)
	}
	return group, label, nil
}

func newCmdProjectCreate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <group>/<label>",
		Short: "Create a project with a single create request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, label, err := splitProjectPath(args[0])
			if err != nil {
				return err
			}
			uc, err := buildProjectUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			description, _ := cmd.Flags().GetString("description")
			info, _ := cmd.Flags().GetStringToString("info")
			out, err := uc.Create(ctx, &project.CreateInput{Descriptor: &model.ProjectDescriptor{
				Group:       group,
				Label:       label,
				Description: description,
				Info:        info,
			}})
			if err != nil {
				return err
			}
			return printJSON(cmd, out.Project)
		},
	}
	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().StringToString("info", nil, "Project info metadata (key=value,...)")
	return cmd
}

func newCmdProjectGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <group>/<label>",
		Short: "Look up a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group, label, err := splitProjectPath(args[0])
			if err != nil {
				return err
			}
			uc, err := buildProjectUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			p, err := uc.Repos.Project.Lookup(ctx, group, label)
			if err != nil {
				return err
			}
			return printJSON(cmd, p)
		},
	}
}

func newCmdProjectList() *cobra.Command {
	return &cobra.Command{
		Use:   "list <group>",
		Short: "List the projects of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildProjectUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := uc.List(ctx, &project.ListInput{Group: args[0]})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, p := range out.Projects {
				if err := enc.Encode(p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
