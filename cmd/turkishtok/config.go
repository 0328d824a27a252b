package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the CLI settings, resolvable from flags, environment
// (TURKISHTOK_*) and an optional config file, in that priority order.
type Config struct {
	// VocabDir is a local directory holding the three tier-dictionary
	// files. When empty, the dictionaries are fetched from RepoID.
	VocabDir string `mapstructure:"vocab_dir"`
	// RepoID is the hub repository to download dictionaries from.
	RepoID string `mapstructure:"repo_id"`
	// CacheDir overrides the download cache location.
	CacheDir string `mapstructure:"cache_dir"`
}

func DefaultConfig() Config {
	return Config{
		VocabDir: "",
		RepoID:   "trnlp/turkish-tokenizer",
		CacheDir: "",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("vocab-dir", defaults.VocabDir, "Directory with kokler.json, ekler.json and bpe_tokenler.json")
	fs.String("repo-id", defaults.RepoID, "Hub repository to download the tier dictionaries from")
	fs.String("cache-dir", defaults.CacheDir, "Download cache directory")
}

func LoadConfig(fs *pflag.FlagSet, cfgFile string, defaults Config) (Config, error) {
	v := viper.New()
	v.SetDefault("vocab_dir", defaults.VocabDir)
	v.SetDefault("repo_id", defaults.RepoID)
	v.SetDefault("cache_dir", defaults.CacheDir)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "failed to read config file %q", cfgFile)
		}
	}

	v.SetEnvPrefix("TURKISHTOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"vocab_dir", "repo_id", "cache_dir"} {
		flagName := strings.ReplaceAll(key, "_", "-")
		if err := v.BindPFlag(key, fs.Lookup(flagName)); err != nil {
			return Config{}, errors.Wrapf(err, "failed to bind flag %q", flagName)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to unmarshal configuration")
	}
	return cfg, nil
}
