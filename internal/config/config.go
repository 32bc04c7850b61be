package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bardionson/gallery-cli/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	OpenSea   OpenSeaConfig   `yaml:"opensea" mapstructure:"opensea"`
	Alchemy   AlchemyConfig   `yaml:"alchemy" mapstructure:"alchemy"`
	SuperRare SuperRareConfig `yaml:"superrare" mapstructure:"superrare"`
	Wallets   []string        `yaml:"wallets" mapstructure:"wallets"`
	Targets   []model.Target  `yaml:"targets" mapstructure:"targets"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Snapshot  SnapshotConfig  `yaml:"snapshot" mapstructure:"snapshot"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// OpenSeaConfig holds OpenSea API settings.
type OpenSeaConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AlchemyConfig holds Alchemy NFT API settings.
type AlchemyConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// SuperRareConfig holds the SuperRare creator API settings.
type SuperRareConfig struct {
	BaseURL   string   `yaml:"base_url" mapstructure:"base_url"`
	Creator   string   `yaml:"creator" mapstructure:"creator"`
	Contracts []string `yaml:"contracts" mapstructure:"contracts"`
}

// PipelineConfig holds pacing and bounding knobs for the aggregation run.
type PipelineConfig struct {
	MaxPages          int    `yaml:"max_pages" mapstructure:"max_pages"`
	PageDelayMillis   int    `yaml:"page_delay_ms" mapstructure:"page_delay_ms"`
	PageSize          int    `yaml:"page_size" mapstructure:"page_size"`
	ListingsChunkSize int    `yaml:"listings_chunk_size" mapstructure:"listings_chunk_size"`
	ChunkDelayMillis  int    `yaml:"chunk_delay_ms" mapstructure:"chunk_delay_ms"`
	ContractBatchSize int    `yaml:"contract_batch_size" mapstructure:"contract_batch_size"`
	BatchDelayMillis  int    `yaml:"batch_delay_ms" mapstructure:"batch_delay_ms"`
	CollectionsConfig string `yaml:"collections_config" mapstructure:"collections_config"`
}

// SnapshotConfig configures the persisted JSON snapshot.
type SnapshotConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// StoreConfig configures the refresh-run history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ServerConfig configures the snapshot API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Secrets default to empty so AutomaticEnv can fill them
	// even when no config file registers the keys.
	v.SetDefault("opensea.key", "")
	v.SetDefault("opensea.base_url", "https://api.opensea.io/api/v2")
	v.SetDefault("alchemy.key", "")
	v.SetDefault("alchemy.base_url", "https://eth-mainnet.g.alchemy.com/nft/v3")
	v.SetDefault("superrare.base_url", "https://api.superrare.com")
	v.SetDefault("superrare.creator", "")
	v.SetDefault("pipeline.max_pages", 5)
	v.SetDefault("pipeline.page_delay_ms", 200)
	v.SetDefault("pipeline.page_size", 50)
	v.SetDefault("pipeline.listings_chunk_size", 30)
	v.SetDefault("pipeline.chunk_delay_ms", 500)
	v.SetDefault("pipeline.contract_batch_size", 5)
	v.SetDefault("pipeline.batch_delay_ms", 1000)
	v.SetDefault("pipeline.collections_config", "collections.yaml")
	v.SetDefault("snapshot.path", "data/nfts.json")
	v.SetDefault("store.path", "data/runs.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	// GALLERY_WALLETS_OVERRIDE, comma-separated, beats the file list.
	if raw := v.GetString("wallets_override"); raw != "" {
		var wallets []string
		for _, w := range strings.Split(raw, ",") {
			if w = strings.TrimSpace(w); w != "" {
				wallets = append(wallets, w)
			}
		}
		cfg.Wallets = wallets
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
