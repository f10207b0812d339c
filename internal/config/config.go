package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Reframe ReframeConfig `mapstructure:"reframe"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LLMConfig selects the chat-completion provider. APIKey may be empty at
// startup; requests then fail with a configuration error instead of the
// process refusing to boot.
type LLMConfig struct {
	Provider     string        `mapstructure:"provider"`
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	DebugRequest bool          `mapstructure:"debug_request"`
}

type ReframeConfig struct {
	Model              string  `mapstructure:"model"`
	Temperature        float32 `mapstructure:"temperature"`
	MaxTokens          int     `mapstructure:"max_tokens"`
	SystemPrompt       string  `mapstructure:"system_prompt"`
	MaxHistoryMessages int     `mapstructure:"max_history_messages"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	ProviderOpenAI = "openai"
	ProviderQwen   = "qwen"
	ProviderArk    = "ark"
)

// credentialEnv maps each provider to the environment variable holding its key.
var credentialEnv = map[string]string{
	ProviderOpenAI: "OPENAI_API_KEY",
	ProviderQwen:   "DASHSCOPE_API_KEY",
	ProviderArk:    "ARK_API_KEY",
}

var cfg *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.max_header_bytes", 1<<20)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("llm.provider", ProviderOpenAI)
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 60*time.Second)
	v.SetDefault("llm.debug_request", false)

	v.SetDefault("reframe.model", "gpt-4.1-nano")
	v.SetDefault("reframe.temperature", 0.6)
	v.SetDefault("reframe.max_tokens", 500)
	v.SetDefault("reframe.system_prompt", "")
	v.SetDefault("reframe.max_history_messages", 0)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"POST", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Content-Type", "Accept"})
	v.SetDefault("cors.max_age", 600)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the YAML file at configPath. A missing file is not an error:
// defaults and environment variables are enough to run.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("OPTIMISTIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, err
	}

	// the file and OPTIMISTIFY_LLM_API_KEY win over the provider's own variable
	if loaded.LLM.APIKey == "" {
		if name, ok := credentialEnv[loaded.LLM.Provider]; ok {
			loaded.LLM.APIKey = os.Getenv(name)
		}
	}

	cfg = loaded
	return cfg, nil
}

func Get() *Config {
	return cfg
}

// CredentialEnv returns the environment variable that carries the API key for
// provider, or "" when the provider is unknown.
func CredentialEnv(provider string) string {
	return credentialEnv[provider]
}
