package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/coolbeans/lawamend/pkg/config"
	"github.com/coolbeans/lawamend/pkg/lookup"
	"github.com/coolbeans/lawamend/pkg/render"
	"github.com/coolbeans/lawamend/pkg/server"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lawamend",
		Short: "Korean statute search and amendment drafting",
		Long: `Lawamend searches Korean statutes from the National Law Information
Center and drafts partial-amendment sentences (일부개정문).

It provides:
  - Whitespace-insensitive search with highlighted article fragments
  - Amendment sentences citing every location of a term
  - Postposition (조사) agreement for the replacement term
  - Text, Markdown, HTML, JSON and DOCX output
  - An HTTP API serving both operations`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logger, err := newLogger(stderr, logLevel)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "YAML configuration file")
	flags.String("log-level", "warn", "Log level (trace, debug, info, warn, error)")
	flags.String("oc", "", "law.go.kr access identifier (OC)")
	flags.String("base-url", "", "law.go.kr API origin")
	flags.String("source", "", "Directory of statute XML files to use instead of the API")
	flags.String("cache-dir", "", "Directory for caching statute bodies")
	flags.Int("workers", 0, "Number of statutes fetched concurrently")
	flags.Duration("rate-limit", 0, "Minimum interval between API requests")

	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(amendCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search statutes for a term",
		Long: `Search every statute that mentions the query and print the matching
articles with the query highlighted. Whitespace is ignored when matching.

Example:
  lawamend search 개인정보
  lawamend search "개인 정보" --format html --output result.html`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}

			return withRunner(cmd.Context(), cfg, func(runner *lookup.Runner) error {
				results, err := runner.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				return writeOutput(cmd, func(w io.Writer) error {
					return render.Search(w, format, render.SearchReport{Query: query, Results: results})
				})
			})
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format (text, markdown, html, json, docx)")
	cmd.Flags().StringP("output", "o", "", "Write output to a file instead of stdout")
	return cmd
}

func amendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amend <find> <replace>",
		Short: "Draft amendment sentences replacing a term",
		Long: `Draft one partial amendment per statute that literally contains the
term to find. Each amendment cites every location of the term and attaches
the postposition agreeing with the replacement.

Example:
  lawamend amend 사람을 자연인
  lawamend amend 기관과 단체 --format docx --output amendments.docx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			find, replacement := args[0], args[1]

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd, cfg)
			if err != nil {
				return err
			}

			return withRunner(cmd.Context(), cfg, func(runner *lookup.Runner) error {
				amendments, err := runner.Amend(cmd.Context(), find, replacement)
				if err != nil {
					return err
				}
				return writeOutput(cmd, func(w io.Writer) error {
					return render.Amendments(w, format, render.AmendReport{
						Find:       find,
						Replace:    replacement,
						Amendments: amendments,
					})
				})
			})
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format (text, markdown, html, json, docx)")
	cmd.Flags().StringP("output", "o", "", "Write output to a file instead of stdout")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search and amendment drafting over HTTP",
		Long: `Start an HTTP server exposing:
  GET /health
  GET /api/search?q=<query>&format=<format>
  GET /api/amend?find=<term>&replace=<term>&format=<format>

Responses default to JSON.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.Listen, _ = cmd.Flags().GetString("listen")
			}

			return withRunner(cmd.Context(), cfg, func(runner *lookup.Runner) error {
				logger := zerolog.Ctx(cmd.Context())
				handler := server.NewServer(runner, *logger, version)
				return server.ListenAndServe(cmd.Context(), cfg.Listen, handler)
			})
		},
	}

	cmd.Flags().String("listen", config.DefaultListen, "Address to listen on")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lawamend %s\n", version)
		},
	}
}

// newLogger builds the console logger written to stderr.
func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	parsedLevel, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Logger{}, errors.Errorf("invalid log level %q: %w", level, err)
	}
	if parsedLevel == zerolog.NoLevel {
		parsedLevel = zerolog.WarnLevel
	}
	consoleWriter := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(consoleWriter).Level(parsedLevel).With().Timestamp().Logger(), nil
}

// loadConfig loads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("oc") {
		cfg.API.OC, _ = flags.GetString("oc")
	}
	if flags.Changed("base-url") {
		cfg.API.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("source") {
		cfg.Source, _ = flags.GetString("source")
	}
	if flags.Changed("cache-dir") {
		cfg.API.CacheDir, _ = flags.GetString("cache-dir")
	}
	if flags.Changed("workers") {
		cfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("rate-limit") {
		cfg.API.RateLimit, _ = flags.GetDuration("rate-limit")
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// outputFormat resolves --format, falling back to the configured default.
func outputFormat(cmd *cobra.Command, cfg config.Config) (render.Format, error) {
	name, _ := cmd.Flags().GetString("format")
	if name == "" {
		name = cfg.Output
	}
	return render.ParseFormat(name)
}

// withRunner opens the configured source and runs fn with a Runner over it.
func withRunner(ctx context.Context, cfg config.Config, fn func(*lookup.Runner) error) error {
	source, closeSource, err := cfg.NewSource()
	if err != nil {
		return err
	}
	defer closeSource()

	zerolog.Ctx(ctx).Debug().Str("source", cfg.Source).Int("workers", cfg.Workers).Msg("opened statute source")
	return fn(lookup.NewRunner(source, cfg.Workers))
}

// writeOutput writes to --output when given, stdout otherwise.
func writeOutput(cmd *cobra.Command, write func(io.Writer) error) error {
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return errors.Errorf("failed to create output file %s: %w", outputPath, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return errors.Errorf("failed to close output file %s: %w", outputPath, err)
	}

	zerolog.Ctx(cmd.Context()).Info().Str("path", outputPath).Msg("wrote output")
	return nil
}
