package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/naccdata/flywheel-extensions/config/gearcfg"
	"github.com/naccdata/flywheel-extensions/usecase/gear"
)

func newCmdRun() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the gear in --gear-dir and write output/result.json",
		Args:  cobra.NoArgs,
		RunE:  runGear,
	}
	addRunFlags(cmd)
	return cmd
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("dry-run", false, "Report what would be created without creating it")
	cmd.Flags().String("project-file", "", "Project file to provision instead of the project_file input")
}

func runGear(cmd *cobra.Command, _ []string) (err error) {
	dir := gearDir(cmd)
	ctx, cleanup := withCmdRunLogger(cmd.Context(), "gear.run", dir)
	defer func() { cleanup(err) }()

	ctx, cancel := context.WithTimeout(ctx, commandTimeout(cmd))
	defer cancel()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	projectFile, _ := cmd.Flags().GetString("project-file")

	uc := &gear.UseCase{Gear: gearcfg.Gear{Dir: dir}, Connect: connector(cmd)}
	out, err := uc.Run(ctx, &gear.RunInput{DryRun: dryRun, ProjectFile: projectFile, SetupErr: setupErr})
	if err != nil {
		return err
	}
	if out.ExitCode != gear.ExitOK {
		return ExitCodeError{Code: out.ExitCode}
	}
	return nil
}
