package transport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed.
const waitDelay = time.Second

// GrpcurlClient implements Transport by running grpcurl once per invocation
// over a plaintext connection.
type GrpcurlClient struct {
	binary    string
	address   string
	service   string
	timeout   time.Duration
	extraArgs []string
}

// NewGrpcurlClient creates a client with the given options applied over the
// defaults.
func NewGrpcurlClient(opts ...Option) *GrpcurlClient {
	cfg := &clientConfig{
		binary:  DefaultBinary,
		address: DefaultAddress,
		service: DefaultService,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &GrpcurlClient{
		binary:    cfg.binary,
		address:   cfg.address,
		service:   cfg.service,
		timeout:   cfg.timeout,
		extraArgs: cfg.extraArgs,
	}
}

// Address returns the host:port the client targets.
func (c *GrpcurlClient) Address() string {
	return c.address
}

// Service returns the fully-qualified method the client invokes.
func (c *GrpcurlClient) Service() string {
	return c.service
}

// Invoke runs a single SearchMemories call.
func (c *GrpcurlClient) Invoke(ctx context.Context, query string, rc RequestContext) Result {
	start := time.Now()
	result := c.invoke(ctx, query, rc)
	result.Duration = time.Since(start)

	slog.Debug("search invocation finished",
		"query", query,
		"success", result.Success,
		"memories", result.MemoryCount,
		"duration", result.Duration,
	)
	return result
}

func (c *GrpcurlClient) invoke(ctx context.Context, query string, rc RequestContext) Result {
	payload, err := BuildRequest(query, rc)
	if err != nil {
		return Failed(query, err.Error())
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, c.args(payload)...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Failed(query, TimeoutMessage)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return Failed(query, msg)
		}

		return Failed(query, err.Error())
	}

	return ParseResponse(query, stdout.Bytes())
}

func (c *GrpcurlClient) args(payload []byte) []string {
	args := make([]string, 0, 5+len(c.extraArgs))
	args = append(args, "-plaintext", "-d", string(payload))
	args = append(args, c.extraArgs...)
	return append(args, c.address, c.service)
}
