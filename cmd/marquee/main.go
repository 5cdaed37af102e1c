package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/api"
	"github.com/mmcdole/marquee/internal/auth"
	"github.com/mmcdole/marquee/internal/catalog"
	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/favorites"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tui"
	"github.com/mmcdole/marquee/internal/validation"
	"github.com/mmcdole/marquee/internal/viewmodel"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := log.SetupLogger(cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer closer.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("marquee needs an interactive terminal")
	}

	if !cfg.IsConfigured() {
		if err := runSetupFlow(cfg); err != nil {
			return err
		}
	}

	local, err := store.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}
	defer local.Close()

	// Built once here and passed down
	sess := session.NewStore(auth.InitialState(local), logger)
	client := api.NewClient(cfg.Server.URL, local, api.Options{
		Timeout:           cfg.Server.Timeout,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Burst:             cfg.Server.Burst,
	}, logger)
	gateway := auth.NewGateway(client, sess, local, local, logger)
	defer gateway.Close()

	model := tui.NewModel(tui.Options{
		Deps: viewmodel.Deps{
			Session:   sess,
			Auth:      gateway,
			Favorites: favorites.NewRegistry(sess, client, gateway, local, logger),
			Catalog:   catalog.NewGateway(client, logger),
			Validator: validation.New(),
			Timeout:   cfg.Server.Timeout,
			Logger:    logger,
		},
		Tabs:           local,
		SplashDuration: cfg.UI.SplashDuration,
		Resume:         gateway.Resume,
		Logger:         logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI", "server", cfg.Server.URL)

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow asks for the backend URL and saves it
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter the movie server URL (e.g., http://localhost:8080): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		serverURL := strings.TrimRight(strings.TrimSpace(input), "/")
		if serverURL == "" {
			fmt.Println("Server URL cannot be empty. Please try again.")
			continue
		}
		u, err := url.Parse(serverURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			fmt.Println("Enter a full http:// or https:// URL.")
			continue
		}

		cfg.Server.URL = serverURL
		break
	}

	if err := config.SaveConfig(cfg, ""); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	return nil
}
