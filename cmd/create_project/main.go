package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naccdata/flywheel-extensions/config/gearcfg"
	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
)

// Environment variables consulted when the matching flag is not given.
const (
	envGearDir   = "FLYWHEEL"
	envAPIURL    = "FW_API_URL"
	envAPIKey    = "FW_API_KEY"
	envLogFormat = "CREATE_PROJECT_LOG_FORMAT"
	envLogLevel  = "CREATE_PROJECT_LOG_LEVEL"
	envLogOutput = "CREATE_PROJECT_LOG_OUTPUT"
)

// ExitCodeError carries the process exit code of a run that produced its
// Result. It is not a command failure.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// logFile is the log destination opened by the root command.
var logFile *logging.LogFile

// setupErr holds a setup failure of a gear command, reported in its Result.
var setupErr error

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create_project",
		Short: "Create Flywheel projects",
		Long: "Create Flywheel projects.\n\n" +
			"Without a subcommand the gear found in --gear-dir is run: manifest.json and\n" +
			"config.json are validated, the project is created and output/result.json is written.",
		Version:       version,
		RunE:          runGear,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addRunFlags(cmd)

	pf := cmd.PersistentFlags()
	pf.String("gear-dir", gearcfg.DefaultDir, "Gear base directory (env "+envGearDir+")")
	pf.String("api-url", "", "Backend URL (env "+envAPIURL+") (https://<site> | sqlite:/path/to.db | memory:); derived from the API key when empty.\n"+
		"memory: starts empty on every run, so it only serves dry runs and provision")
	pf.Duration("timeout", defaultTimeout, "Overall timeout of the command; 0 means the default")
	pf.String("env-file", "", "Load environment variables from a dotenv file")
	pf.String("log-format", "auto", "Log format (auto|human|text|json) (env "+envLogFormat+")")
	pf.String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR) (env "+envLogLevel+")")
	pf.String("log-output", "-", "Log output (-|none|auto|<path>) (env "+envLogOutput+")")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		setupErr = nil
		err := setupLogging(c)
		if err == nil {
			return nil
		}
		if !isGearCommand(c) {
			return err
		}
		// The gear still owes a Result; log to stderr and report err there.
		l, _ := logging.NewWithWriter("human", slog.LevelInfo, c.ErrOrStderr())
		c.SetContext(logging.WithLogger(c.Context(), l))
		setupErr = err
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdRun())
	cmd.AddCommand(newCmdProvision())
	cmd.AddCommand(newCmdProject())
	cmd.AddCommand(newCmdGroup())
	return cmd
}

// setupLogging loads the env file and installs the logger. Failures are
// reported as *model.ValidationError on the offending flag.
func setupLogging(c *cobra.Command) error {
	if envFile := flagString(c, "env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return &model.ValidationError{Key: "env-file", Reason: fmt.Sprintf("failed to load %s: %v", envFile, err)}
		}
	}
	level, err := logging.ParseLevel(setting(c, "log-level", envLogLevel))
	if err != nil {
		return &model.ValidationError{Key: "log-level", Reason: err.Error()}
	}
	lf, err := logging.NewLogFile(&logging.LogConfig{
		Output: setting(c, "log-output", envLogOutput),
		Dir:    filepath.Join(gearDir(c), "work"),
	})
	if err != nil {
		return &model.ValidationError{Key: "log-output", Reason: err.Error()}
	}
	logFile = lf
	l, err := logging.NewWithWriter(setting(c, "log-format", envLogFormat), level, lf.Writer())
	if err != nil {
		return &model.ValidationError{Key: "log-format", Reason: err.Error()}
	}
	c.SetContext(logging.WithLogger(c.Context(), l))
	return nil
}

// isGearCommand reports whether c runs the gear: the root command or run.
func isGearCommand(c *cobra.Command) bool {
	return !c.HasParent() || (c.Name() == "run" && !c.Parent().HasParent())
}

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs root and returns the process exit code.
func execute(root *cobra.Command) int {
	if root.Context() == nil {
		root.SetContext(context.Background())
	}
	executed, err := root.ExecuteC()
	defer func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}()
	if err == nil {
		return 0
	}
	var exitErr ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	ctx := root.Context()
	if executed != nil && executed.Context() != nil {
		ctx = executed.Context()
	}
	logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
	return 1
}
