package openai

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joseph-ayodele/legal-docify/constants"
)

// Config for the OpenAI client. The API key is injected by the caller; the
// client never reads the environment.
type Config struct {
	APIKey      string
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // default constants.DefaultOpenAIModel
	Temperature float32       // 0..2
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = constants.DefaultOpenAIModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

func (c *Client) Provider() string { return string(constants.ProviderOpenAI) }
func (c *Client) Model() string    { return c.cfg.Model }
