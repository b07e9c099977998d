package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcptools "github.com/giantswarm/memsearch-probe/internal/mcp"
	"github.com/giantswarm/memsearch-probe/internal/query"
	"github.com/giantswarm/memsearch-probe/internal/server"
	"github.com/giantswarm/memsearch-probe/internal/transport"
)

const (
	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

func newServeCmd() *cobra.Command {
	var (
		endpoint     endpointFlags
		mcpTransport string
		httpAddr     string
		httpEndpoint string
		userID       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the MCP server to expose the memory search probe via the Model Context Protocol.

Supports multiple transport types:
  - stdio: Standard input/output (default, for IDE integration)
  - streamable-http: HTTP with streaming support (for remote access)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := endpoint.load(cmd)
			if err != nil {
				return err
			}

			pools, err := query.LoadPools(endpoint.poolsFile)
			if err != nil {
				return err
			}

			sc := &server.ServerContext{
				Config:        cfg,
				Transport:     transport.NewGrpcurlClient(cfg.TransportOptions()...),
				Pools:         pools,
				DefaultUserID: userID,
			}

			mcpSrv := mcpserver.NewMCPServer("memsearch-probe", cmd.Root().Version,
				mcpserver.WithToolCapabilities(true),
			)

			if err := mcptools.RegisterTools(mcpSrv, sc); err != nil {
				return fmt.Errorf("failed to register MCP tools: %w", err)
			}

			shutdownCtx, cancel := signal.NotifyContext(context.Background(),
				os.Interrupt, syscall.SIGTERM)
			defer cancel()

			slog.Debug("starting MCP server",
				"transport", mcpTransport,
				"target", cfg.Address(),
				"service", cfg.Service,
			)

			switch mcpTransport {
			case transportStdio:
				return runStdioServer(mcpSrv)
			case transportStreamableHTTP:
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Starting memsearch-probe MCP server with %s transport...\n", mcpTransport)
				fmt.Fprintf(out, "  Target: %s (%s)\n", cfg.Address(), cfg.Service)
				return runHTTPServer(shutdownCtx, cmd, mcpSrv, httpAddr, httpEndpoint)
			default:
				return fmt.Errorf("unsupported transport: %s (supported: stdio, streamable-http)", mcpTransport)
			}
		},
	}

	endpoint.register(cmd)
	cmd.Flags().StringVar(&mcpTransport, "transport", transportStdio, "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http)")
	cmd.Flags().StringVar(&httpEndpoint, "http-endpoint", "/mcp", "HTTP endpoint path (for streamable-http)")
	cmd.Flags().StringVar(&userID, "user-id", "harry", "User ID used when a tool call does not name one")

	return cmd
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	if err := mcpserver.ServeStdio(mcpSrv); err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runHTTPServer(ctx context.Context, cmd *cobra.Command, mcpSrv *mcpserver.MCPServer, addr, endpoint string) error {
	out := cmd.OutOrStdout()

	mcpHandler := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithEndpointPath(endpoint),
	)

	mux := http.NewServeMux()
	mux.Handle(endpoint, mcpHandler)
	mux.HandleFunc("/healthz", healthz)

	fmt.Fprintf(out, "  HTTP endpoint: %s\n", endpoint)
	fmt.Fprintf(out, "  Health: /healthz\n")

	// Probe runs hold the connection for up to 100 requests.
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Minute,
		IdleTimeout:       120 * time.Second,
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out, "Shutdown signal received, stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}

	fmt.Fprintln(out, "HTTP server stopped")
	return nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
