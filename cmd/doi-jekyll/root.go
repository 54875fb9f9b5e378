package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/FZJ-JSC/doi-jekyll/pkg/core"
	"github.com/FZJ-JSC/doi-jekyll/pkg/datacite"
	"github.com/FZJ-JSC/doi-jekyll/pkg/doijekyll"
	"github.com/FZJ-JSC/doi-jekyll/pkg/jekyll"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	configPath         string
	authorsDir         string
	authorFile         string
	force              bool
	username           string
	password           string
	skipURL            bool
	dryRun             bool
	additionalMetadata string
	timeout            time.Duration
	verbosity          int
)

// rootCmd is the whole CLI: one post per run, no subcommands.
var rootCmd = &cobra.Command{
	Use:   "doi-jekyll [flags] BLOGPOST",
	Short: "Create DOIs for Jekyll blog posts via DataCite MDS",
	Long: `doi-jekyll parses Jekyll blog data to create DOIs via DataCite MDS.
The YAML frontmatter of a post is the basis, augmented with blog-wide
configuration (in a "doi_jekyll" key of _config.yml) and author-specific
data from an author file. The issued DOI is written back into the post.`,
	Example: `  doi-jekyll --dry-run -v _posts/2022-08-01-abcdef.md
  doi-jekyll -vvv -af _authors/stephen.md -c _configs/config.yml --skip-url _posts/2022-08-01-abcdef.md`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		levels := []slog.Level{slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug}
		if verbosity >= len(levels) {
			verbosity = len(levels) - 1
		}

		opts := &slog.HandlerOptions{
			Level: levels[verbosity],
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
	RunE: run,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	user, pass, err := resolveCredentials()
	if err != nil {
		return err
	}

	blog, err := jekyll.LoadConfig(configPath)
	if err != nil {
		return err
	}
	slog.Debug("parsed blog configuration", "prefix", blog.Prefix, "provider", blog.ProviderURL)

	var overrides core.Metadata
	if additionalMetadata != "" {
		if err := yaml.Unmarshal([]byte(additionalMetadata), &overrides); err != nil {
			return fmt.Errorf("invalid --additional-metadata mapping: %w", err)
		}
	}

	registry := datacite.NewClient(datacite.ClientConfig{
		BaseURL:    blog.ProviderURL,
		Username:   user,
		Password:   pass,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     slog.Default(),
	})

	service := doijekyll.New(blog, registry,
		doijekyll.WithLogger(slog.Default()),
		doijekyll.WithForce(force),
		doijekyll.WithDryRun(dryRun),
		doijekyll.WithSkipURL(skipURL),
		doijekyll.WithOverrides(overrides),
		doijekyll.WithAuthorsDir(authorsDir),
		doijekyll.WithAuthorFile(authorFile),
	)

	doi, err := service.Run(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Printf("Dry-run finished, would create %s at DataCite.\n", doi)
	} else {
		fmt.Printf("Successfully created %s at DataCite!\n", doi)
	}
	return nil
}

// resolveCredentials applies the environment fallback chain:
// flag value, then DJ_DATACITE_*, then DATACITE_*.
func resolveCredentials() (string, string, error) {
	user := fallbackEnv(username, "DJ_DATACITE_USER", "DATACITE_USER")
	pass := fallbackEnv(password, "DJ_DATACITE_PASSWORD", "DATACITE_PASSWORD")
	if user == "" {
		return "", "", fmt.Errorf("please provide a DataCite username (--user or $DJ_DATACITE_USER): %w",
			core.ErrMissingCredentials)
	}
	if pass == "" {
		return "", "", fmt.Errorf("please provide a DataCite password (--password or $DJ_DATACITE_PASSWORD): %w",
			core.ErrMissingCredentials)
	}
	return user, pass, nil
}

func fallbackEnv(value string, envKeys ...string) string {
	if value != "" {
		return value
	}
	for _, key := range envKeys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "_config.yml", "Jekyll configuration file")
	rootCmd.Flags().StringVar(&authorsDir, "authors-dir", "_authors", "Directory with author Markdown files (YAML frontmatter)")
	rootCmd.Flags().StringVar(&authorFile, "author-file", "", "Explicit author file, skips discovery in the authors directory")
	rootCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing DOI in the post")
	rootCmd.Flags().StringVarP(&username, "user", "u", "", "Username for DataCite (fallback: $DJ_DATACITE_USER, $DATACITE_USER)")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "Password for DataCite (fallback: $DJ_DATACITE_PASSWORD, $DATACITE_PASSWORD)")
	rootCmd.Flags().BoolVar(&skipURL, "skip-url", false, "Don't register a URL for the entry")
	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Don't communicate anything with DataCite")
	rootCmd.Flags().StringVarP(&additionalMetadata, "additional-metadata", "m", "", "Inline YAML mapping merged over the assembled metadata")
	rootCmd.Flags().DurationVar(&timeout, "timeout", datacite.DefaultTimeout, "Timeout for each registry call")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v warnings, -vv info, -vvv debug)")
}
