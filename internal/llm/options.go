package llm

type clientConfig struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float32
}

// Option configures an OpenAIClient.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL, including the /v1 suffix.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithModel sets the model name. Empty leaves the choice to the server.
func WithModel(model string) Option {
	return func(c *clientConfig) {
		c.model = model
	}
}

// WithTemperature sets the sampling temperature. Zero uses the server default.
func WithTemperature(temp float64) Option {
	return func(c *clientConfig) {
		c.temperature = float32(temp)
	}
}
