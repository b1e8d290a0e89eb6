package config

import (
	"io"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

type Config struct {
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Decode    DecodeConfig  `mapstructure:"decode"`
	Encode    EncodeConfig  `mapstructure:"encode"`
	Inspect   InspectConfig `mapstructure:"inspect"`
}

type DecodeConfig struct {
	MaxVectorLen  int64 `mapstructure:"max_vector_len"`
	MaxInputBytes int64 `mapstructure:"max_input_bytes"`
}

type EncodeConfig struct {
	Format      string `mapstructure:"format"`
	Version     int    `mapstructure:"version"`
	Compression string `mapstructure:"compression"`
}

type InspectConfig struct {
	Workers int  `mapstructure:"workers"`
	Cache   bool `mapstructure:"cache"`
	MaxRows int  `mapstructure:"max_rows"`
}

func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := &Config{}
	if err := decoder.Decode(config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return config, nil
}
