package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/oxidekit/core/internal/hotreload"
	"github.com/oxidekit/core/internal/logging"
)

var (
	serveHost     string
	servePort     int
	serveWatch    string
	serveWatchExt []string
	serveTUI      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the hot-reload WebSocket dev server (C6)",
	RunE: func(cmd *cobra.Command, args []string) error {
		hrCfg := cfg.HotReload
		if serveHost != "" {
			hrCfg.Host = serveHost
		}
		if servePort != 0 {
			hrCfg.Port = servePort
		}

		server := hotreload.New(hotreload.Config{
			Host:             hrCfg.Host,
			Port:             hrCfg.Port,
			MaxClients:       hrCfg.MaxClients,
			PingInterval:     hrCfg.PingInterval(),
			HandshakeTimeout: hotreload.DefaultConfig().HandshakeTimeout,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logging.Get(logging.CategoryCLI)

		if serveWatch != "" {
			watcher, err := hotreload.NewWatcher(server, noopCompile, serveWatchExt)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}
			if err := watcher.Add(serveWatch); err != nil {
				return fmt.Errorf("watch %s: %w", serveWatch, err)
			}
			defer watcher.Close()
			go watcher.Run(ctx.Done())
			log.Infow("watching for changes", "dir", serveWatch, "extensions", serveWatchExt)
		}

		stopServer := func() error {
			stopCtx, cancel := context.WithTimeout(context.Background(), hrCfg.ShutdownTimeout())
			defer cancel()
			return server.Stop(stopCtx)
		}

		if serveTUI {
			if err := server.Start(ctx); err != nil {
				return fmt.Errorf("hot-reload server: %w", err)
			}
			program := tea.NewProgram(hotreload.NewDashboardModel(server))
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			return stopServer()
		}

		if err := server.Start(ctx); err != nil {
			return fmt.Errorf("hot-reload server: %w", err)
		}
		log.Infow("hot-reload server running", "address", server.Address())
		<-ctx.Done()
		return stopServer()
	},
}

// noopCompile is the placeholder CompileFunc used when `oxide serve
// --watch` is run without a build pipeline wired in front of it: it
// reports the change immediately with no compiled components, so
// clients still get compile_success and a hot_reload notification naming
// the changed file.
func noopCompile(path string) (components []string, compileTimeMs int64, err error) {
	return nil, 0, nil
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "bind port (overrides config)")
	serveCmd.Flags().StringVar(&serveWatch, "watch", "", "directory to watch for source changes")
	serveCmd.Flags().StringSliceVar(&serveWatchExt, "watch-ext", []string{".oui"}, "file extensions to watch")
	serveCmd.Flags().BoolVar(&serveTUI, "tui", false, "show the live dashboard instead of plain logs")
}
