package cli

import (
	"rconv/config"
	"rconv/log"
	"rconv/rds"
	"rconv/rwire"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// LoadConfig reads the config file of the home directory named by the home
// flag and applies its logging settings.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	homeDir := GetHomeDir(cmd)
	if err := config.EnsureHomeDir(homeDir); err != nil {
		return nil, err
	}
	cfg, err := config.ReadConfigFile(homeDir)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	if err := ConfigureLogging(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func ConfigureLogging(cfg *config.Config) error {
	level, err := log.NewLevel(cfg.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	format, err := log.NewFormat(cfg.LogFormat)
	if err != nil {
		return errors.Wrap(err, "invalid log format")
	}
	log.SetLevel(level)
	log.SetFormat(format)
	return nil
}

func DecodeConfig(cfg *config.Config) *rds.Config {
	return &rds.Config{
		Decoder: rwire.Config{
			MaxVectorLen: cfg.Decode.MaxVectorLen,
		},
		MaxInputBytes: cfg.Decode.MaxInputBytes,
	}
}

// WriteOptions builds encoder options from the config file, overridden by
// any of the format, version and compression flags set on cmd.
func WriteOptions(cmd *cobra.Command, cfg *config.Config) (*rds.WriteOptions, error) {
	formatName := cfg.Encode.Format
	version := cfg.Encode.Version
	compName := cfg.Encode.Compression
	flags := cmd.Flags()
	if flags.Changed(FlagFormat) {
		formatName, _ = flags.GetString(FlagFormat)
	}
	if flags.Changed(FlagVersion) {
		version, _ = flags.GetInt(FlagVersion)
	}
	if flags.Changed(FlagCompression) {
		compName, _ = flags.GetString(FlagCompression)
	}

	format, err := rwire.ParseFormat(formatName)
	if err != nil {
		return nil, err
	}
	comp, err := rds.ParseCompression(compName)
	if err != nil {
		return nil, err
	}
	opts := &rds.WriteOptions{
		Compression: comp,
	}
	opts.Format = format
	opts.Version = int32(version)
	return opts, nil
}
