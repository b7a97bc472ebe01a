// Package commands implements the proptext CLI.
package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/camaradados/proptext"
	googlegenai "github.com/camaradados/proptext/adapter/google-genai"
	"github.com/camaradados/proptext/adapter/pdf"
	redisAdapter "github.com/camaradados/proptext/adapter/redis"
	"github.com/camaradados/proptext/adapter/store"
	"github.com/camaradados/proptext/cleaning"
)

var (
	v      = viper.New()
	cfg    config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "proptext",
	Short: "Extract and clean the full text of Chamber of Deputies propositions",
	Long: `proptext imports propositions from the Chamber of Deputies open data
exports, downloads their full text PDFs and strips letterheads, signatures,
page numbers and annexes before running word clouds, summaries and topic
classification over the cleaned text.

Examples:
  proptext migrate
  proptext import --file proposicoes-2025.json
  proptext extract --limit 500
  proptext clean PL-1234-2025.pdf --remove-annex
  proptext summarize --limit 100`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(v)
		if err != nil {
			return err
		}

		if v.GetBool("debug") {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default ./proptext.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	_ = v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = v.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	setDefaults(v)

	rootCmd.AddCommand(
		migrateCmd,
		importCmd,
		extractCmd,
		cleanCmd,
		wordCloudCmd,
		summarizeCmd,
		classifyCmd,
	)
}

func initConfig() {
	_ = godotenv.Load()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("proptext")
		v.SetConfigType("yaml")
	}

	bindEnv(v)

	// A missing config file is fine, defaults and env apply.
	_ = v.ReadInConfig()
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func openDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=rwc&_foreign_keys=on&_busy_timeout=5000", cfg.Database.Path))
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}

func newCleaner() (*cleaning.Cleaner, error) {
	return cleaning.NewCleaner(cfg.Cleaning, cleaning.WithLogger(logger.Named("cleaning")))
}

// newService wires the service with the adapters the configuration enables.
// The returned close function releases the database and redis connections.
func newService(ctx context.Context, withAnalyzer bool) (*proptext.Service, func(), error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	if err := proptext.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	cleaner, err := newCleaner()
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	var (
		closers = []func() error{db.Close}
		options = []proptext.Option{
			proptext.WithLogger(logger),
			proptext.WithExtractionWorkers(cfg.Workers.Extraction),
			proptext.WithAnalysisWorkers(cfg.Workers.Analysis),
			proptext.WithFetchTimeout(cfg.FetchTimeout),
		}
		closeAll = func() {
			for _, c := range closers {
				_ = c()
			}
		}
	)

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Protocol: 2,
		})
		closers = append(closers, client.Close)
		options = append(options, proptext.WithTextCache(redisAdapter.New(
			client,
			redisAdapter.WithKeyPrefix(cfg.Redis.Prefix),
			redisAdapter.WithTTL(cfg.Redis.TTL),
			redisAdapter.WithLogger(logger),
		)))
	}

	if withAnalyzer {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("genai client: %w", err)
		}
		options = append(options, proptext.WithAnalyzer(googlegenai.New(
			client,
			googlegenai.WithGenerativeModel(cfg.Gemini.Model),
			googlegenai.WithLogger(logger),
		)))
	}

	svc := proptext.New(
		pdf.New(pdf.WithLogger(logger)),
		cleaner,
		store.New(db, store.WithLogger(logger)),
		options...,
	)

	return svc, closeAll, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
