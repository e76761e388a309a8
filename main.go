package main

import (
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-chat/chat"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio-chat",
	Short: "Portfolio site with a scripted ask-me chat",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portfolio web server",
	RunE:  runServe,
}

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a single question from the catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the suggested questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(catalogFlag)
		if err != nil {
			return err
		}
		for _, q := range catalog.Questions() {
			fmt.Fprintln(cmd.OutOrStdout(), q)
		}
		return nil
	},
}

var (
	catalogFlag string
	scoreFlag   bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogFlag, "catalog", os.Getenv("CATALOG_PATH"), "YAML catalog replacing the built-in one")
	askCmd.Flags().BoolVar(&scoreFlag, "score", false, "print the matched topic and similarity")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(questionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadCatalog(path string) (*chat.Catalog, error) {
	if path == "" {
		return chat.DefaultCatalog(), nil
	}
	return chat.LoadCatalog(path)
}

func runAsk(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog(catalogFlag)
	if err != nil {
		return err
	}

	reply, err := chat.NewAssistant(catalog).Ask(strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scoreFlag {
		if reply.Matched {
			fmt.Fprintf(out, "[%s %.3f]\n", reply.Topic, reply.Score)
		} else {
			fmt.Fprintln(out, "[no match]")
		}
	}
	fmt.Fprintln(out, reply.Answer)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr, getEnv("LOG_LEVEL", "info"))
	cfg := loadConfig(logger)
	cfg.CatalogPath = catalogFlag

	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	logger.Info("Catalog loaded", "topics", len(catalog.Patterns()), "questions", len(catalog.Questions()))

	var analytics *Analytics
	if cfg.DatabasePath != "" {
		analytics, err = OpenAnalytics(cfg.DatabasePath, logger)
		if err != nil {
			return errors.Wrap(err, "open analytics")
		}
		defer analytics.Close()
	} else {
		logger.Info("Analytics disabled, DATABASE_PATH is empty")
	}

	srv := newServer(cfg, logger, chat.NewAssistant(catalog), analytics, &smtpMailer{cfg: cfg.SMTP, log: logger})
	handler := withCORS(srv.router(), cfg.AllowedOrigins)

	addr := ":" + cfg.Port
	logger.Info("Listening", "addr", addr, "level", logger.GetLevel())
	return runHTTP(cmd.Context(), addr, handler, logger)
}
