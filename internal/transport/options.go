package transport

import "time"

const (
	// DefaultBinary is the grpcurl executable looked up on PATH.
	DefaultBinary = "grpcurl"
	// DefaultAddress is the memory service endpoint.
	DefaultAddress = "localhost:5051"
	// DefaultService is the fully-qualified SearchMemories method.
	DefaultService = "memory_v1.MemoryService/SearchMemories"
	// DefaultTimeout bounds a single invocation.
	DefaultTimeout = 10 * time.Second
)

// clientConfig holds configuration for a grpcurl client.
type clientConfig struct {
	binary    string
	address   string
	service   string
	timeout   time.Duration
	extraArgs []string
}

// Option is a functional option for configuring a GrpcurlClient.
type Option func(*clientConfig)

// WithBinary sets the grpcurl executable path.
func WithBinary(path string) Option {
	return func(c *clientConfig) {
		c.binary = path
	}
}

// WithAddress sets the host:port of the memory service.
func WithAddress(addr string) Option {
	return func(c *clientConfig) {
		c.address = addr
	}
}

// WithService sets the fully-qualified service/method name.
func WithService(service string) Option {
	return func(c *clientConfig) {
		c.service = service
	}
}

// WithTimeout sets the per-invocation time budget.
// Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExtraArgs appends grpcurl flags placed before the address
// (e.g. "-H", "authorization: ...").
func WithExtraArgs(args ...string) Option {
	return func(c *clientConfig) {
		c.extraArgs = append(c.extraArgs, args...)
	}
}
