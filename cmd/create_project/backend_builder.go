package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naccdata/flywheel-extensions/adapters/flywheel"
	"github.com/naccdata/flywheel-extensions/adapters/store/inmem"
	"github.com/naccdata/flywheel-extensions/adapters/store/rdb"
	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/domain/model"
)

// buildRepos creates repositories based on api-url.
//   - https://, http:// or empty: Flywheel REST API (site taken from the key when empty)
//   - sqlite:<path>: local SQLite stand-in
//   - memory: in-memory stand-in, empty on every run
//
// Misconfiguration is reported as *model.ValidationError on api_url or
// api_key; a database that cannot be opened is a *model.TransportError.
func buildRepos(cmd *cobra.Command, apiKey string) (*domain.Repositories, error) {
	apiURL := setting(cmd, "api-url", envAPIURL)
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}

	switch {
	case strings.HasPrefix(apiURL, "memory:"):
		return inmem.NewStore().Repositories(), nil

	case strings.HasPrefix(apiURL, "sqlite:") || strings.HasPrefix(apiURL, "sqlite3:"):
		db, err := rdb.OpenFromURL(apiURL)
		if err != nil {
			return nil, &model.TransportError{Op: "open " + apiURL, Err: err}
		}
		if err := rdb.AutoMigrate(db); err != nil {
			return nil, &model.TransportError{Op: "migrate " + apiURL, Err: err}
		}
		return rdb.NewRepositories(db), nil

	case apiURL == "" || strings.HasPrefix(apiURL, "https://") || strings.HasPrefix(apiURL, "http://"):
		if apiKey == "" {
			return nil, &model.ValidationError{Key: "api_key", Reason: "no API key: expecting an api-key input or " + envAPIKey}
		}
		client, err := flywheel.New(flywheel.ClientConfig{
			BaseURL:   apiURL,
			APIKey:    apiKey,
			UserAgent: "create_project/" + version,
		})
		if err != nil {
			return nil, &model.ValidationError{Key: "api_key", Reason: err.Error()}
		}
		return client.Repositories(), nil

	default:
		return nil, &model.ValidationError{Key: "api_url", Reason: fmt.Sprintf("unsupported api scheme: %s", apiURL)}
	}
}

// connector adapts buildRepos to the gear use case.
func connector(cmd *cobra.Command) func(context.Context, string) (*domain.Repositories, error) {
	return func(_ context.Context, apiKey string) (*domain.Repositories, error) {
		return buildRepos(cmd, apiKey)
	}
}
