package main

import (
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// config holds the subset of CLI options that can also be set via a
// config file or SATDAG_-prefixed environment variables. Flags are
// applied by main on top of the loaded config, so a flag the user
// actually passed always wins.
type config struct {
	Mode        string `mapstructure:"mode"`
	StartMode   string `mapstructure:"start_mode"`
	Threads     int    `mapstructure:"threads"`
	Verify      bool   `mapstructure:"verify"`
	ThiefMethod bool   `mapstructure:"thief_method"`
	UseGlobalDB bool   `mapstructure:"use_global_db"`
	GlobalDBDir string `mapstructure:"global_db_dir"`
	GDBNoMem    bool   `mapstructure:"gdb_no_mem"`
}

func defaultConfig() config {
	return config{Mode: "flo", Threads: 1, GlobalDBDir: "satdag.db"}
}

// loadConfig layers configuration: built-in defaults, then an optional
// config file at path (any format viper supports: yaml, toml, json),
// then SATDAG_-prefixed environment variables.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("start_mode", cfg.StartMode)
	v.SetDefault("threads", cfg.Threads)
	v.SetDefault("verify", cfg.Verify)
	v.SetDefault("thief_method", cfg.ThiefMethod)
	v.SetDefault("use_global_db", cfg.UseGlobalDB)
	v.SetDefault("global_db_dir", cfg.GlobalDBDir)
	v.SetDefault("gdb_no_mem", cfg.GDBNoMem)

	v.SetEnvPrefix("satdag")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "mapstructure",
		Result:  &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return cfg, err
	}
	return cfg, nil
}
