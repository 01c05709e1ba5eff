package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// flagString returns the value of a flag anywhere in the command hierarchy.
func flagString(cmd *cobra.Command, name string) string {
	if f := findFlag(cmd, name); f != nil {
		return f.Value.String()
	}
	return ""
}

// setting resolves a flag that has an environment fallback. An explicit
// flag wins, then the environment, then the flag default.
func setting(cmd *cobra.Command, name, env string) string {
	f := findFlag(cmd, name)
	if f != nil && f.Changed {
		return f.Value.String()
	}
	if v := os.Getenv(env); env != "" && v != "" {
		return v
	}
	if f != nil {
		return f.Value.String()
	}
	return ""
}

func gearDir(cmd *cobra.Command) string {
	return setting(cmd, "gear-dir", envGearDir)
}

// defaultTimeout bounds a command when --timeout is not positive.
const defaultTimeout = 5 * time.Minute

// commandTimeout returns the --timeout value, defaultTimeout when not positive.
func commandTimeout(cmd *cobra.Command) time.Duration {
	var timeout time.Duration
	if f := findFlag(cmd, "timeout"); f != nil {
		timeout, _ = time.ParseDuration(f.Value.String())
	}
	if timeout <= 0 {
		return defaultTimeout
	}
	return timeout
}
