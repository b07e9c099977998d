package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/giantswarm/memsearch-probe/internal/config"
)

// endpointFlags are shared by every command that talks to the memory service.
type endpointFlags struct {
	configFile string
	host       string
	port       int
	service    string
	grpcurl    string
	timeout    time.Duration
	poolsFile  string
}

func (e *endpointFlags) register(cmd *cobra.Command) {
	def := config.Default()
	fs := cmd.Flags()
	fs.StringVar(&e.configFile, "config", "", "YAML file with host, port, service, grpcurl and timeout")
	fs.StringVar(&e.host, "host", def.Host, "gRPC server host")
	fs.IntVar(&e.port, "port", def.Port, "gRPC server port")
	fs.StringVar(&e.service, "service", def.Service, "Fully-qualified service/method to invoke")
	fs.StringVar(&e.grpcurl, "grpcurl", def.Grpcurl, "Path to the grpcurl binary (or set "+config.GrpcurlEnv+")")
	fs.DurationVar(&e.timeout, "timeout", def.Timeout, "Time budget for a single request")
	fs.StringVar(&e.poolsFile, "pools-file", "", "YAML file replacing the built-in word pools")
}

// load reads the config file, then applies flags the user set explicitly.
func (e *endpointFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(e.configFile)
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("host") {
		cfg.Host = e.host
	}
	if fs.Changed("port") {
		cfg.Port = e.port
	}
	if fs.Changed("service") {
		cfg.Service = e.service
	}
	if fs.Changed("grpcurl") {
		cfg.Grpcurl = e.grpcurl
	}
	if fs.Changed("timeout") {
		cfg.Timeout = e.timeout
	}

	return cfg, cfg.Validate()
}
