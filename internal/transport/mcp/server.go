package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/sandevgo/gptmcp/internal/config"
	"github.com/sandevgo/gptmcp/pkg/log"
)

// Server runs the MCP server on one transport. It implements srv.Service;
// Done is closed once the transport stops on its own, e.g. when the stdio
// client closes stdin.
type Server struct {
	mcp  *mcpserver.MCPServer
	cfg  *config.ServerConfig
	in   io.Reader
	out  io.Writer
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	http *http.Server
	addr string
}

func NewTransportServer(s *mcpserver.MCPServer, cfg *config.ServerConfig) *Server {
	return &Server{
		mcp:  s,
		cfg:  cfg,
		in:   os.Stdin,
		out:  os.Stdout,
		done: make(chan struct{}),
	}
}

func (s *Server) Start(ctx context.Context) error {
	defer s.once.Do(func() { close(s.done) })

	logger := log.FromCtx(ctx)
	logger.Info().
		Str("transport", string(s.cfg.Transport)).
		Str("addr", s.cfg.Addr).
		Msg("starting MCP server")

	switch s.cfg.Transport {
	case config.TransportStdio:
		return s.serveStdio(ctx)
	case config.TransportHTTP:
		return s.serveHTTP(ctx, false, func(string) http.Handler {
			return mcpserver.NewStreamableHTTPServer(s.mcp,
				mcpserver.WithHTTPContextFunc(withLogger(logger)),
			)
		})
	case config.TransportSSE:
		return s.serveHTTP(ctx, true, func(addr string) http.Handler {
			return mcpserver.NewSSEServer(s.mcp,
				mcpserver.WithBaseURL(s.sseBaseURL(addr)),
				mcpserver.WithSSEContextFunc(withLogger(logger)),
			)
		})
	}
	return fmt.Errorf("unsupported transport type: %s", s.cfg.Transport)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	hs := s.http
	s.mu.Unlock()

	if hs == nil {
		return nil
	}
	return hs.Shutdown(ctx)
}

func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Addr is the bound listen address, empty until an HTTP transport listens.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

func (s *Server) serveStdio(ctx context.Context) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.NewStdLoggerFromCtx(ctx, zerolog.ErrorLevel))

	err := stdio.Listen(ctx, s.in, s.out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("stdio transport: %w", err)
	}
	log.FromCtx(ctx).Info().Msg("stdio client disconnected")
	return nil
}

// serveHTTP listens first so the handler can be built for the bound address.
// With endStreams set, open requests are cancelled when shutdown begins; SSE
// streams never go idle on their own.
func (s *Server) serveHTTP(ctx context.Context, endStreams bool, newHandler func(addr string) http.Handler) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%s transport: %w", s.cfg.Transport, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/", newHandler(ln.Addr().String()))

	hs := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          log.NewStdLoggerFromCtx(ctx, zerolog.WarnLevel),
	}
	if endStreams {
		baseCtx, cancelRequests := context.WithCancel(context.WithoutCancel(ctx))
		defer cancelRequests()
		hs.BaseContext = func(net.Listener) context.Context { return baseCtx }
		hs.RegisterOnShutdown(cancelRequests)
	}

	s.mu.Lock()
	s.http = hs
	s.addr = ln.Addr().String()
	s.mu.Unlock()

	log.FromCtx(ctx).Info().Str("addr", ln.Addr().String()).Msg("listening")
	if err := hs.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s transport: %w", s.cfg.Transport, err)
	}
	return nil
}

// sseBaseURL is the public URL announced in the SSE endpoint event. Without
// MCP_BASE_URL it is the bound listen address.
func (s *Server) sseBaseURL(addr string) string {
	if s.cfg.BaseURL != "" {
		return strings.TrimSuffix(s.cfg.BaseURL, "/")
	}
	return "http://" + addr
}

func withLogger(logger *zerolog.Logger) func(context.Context, *http.Request) context.Context {
	return func(ctx context.Context, _ *http.Request) context.Context {
		return logger.WithContext(ctx)
	}
}
