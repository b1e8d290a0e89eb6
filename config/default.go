package config

import (
	"bytes"
	"io"
	"os"
	"path"
	"text/template"

	"rconv/log"

	"github.com/pkg/errors"
)

var DefaultConfig = Config{
	LogLevel:  log.LevelInfo.String(),
	LogFormat: string(log.FormatText),
	Decode: DecodeConfig{
		MaxVectorLen:  1 << 28,
		MaxInputBytes: 1 << 32,
	},
	Encode: EncodeConfig{
		Format:      "xdr",
		Version:     3,
		Compression: "gzip",
	},
	Inspect: InspectConfig{
		Workers: 4,
		Cache:   true,
		MaxRows: 20,
	},
}

const defaultConfigTemplateText = `# rconv Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Sets how log lines are rendered. Can be "text" or "json".
log_format = "{{.LogFormat}}"

# Configures the limits applied when reading serialized objects. Files
# from untrusted sources can declare enormous vectors in a few bytes,
# so both values should stay finite.
[decode]
  # Sets the longest vector the decoder will allocate. 0 disables the check.
  max_vector_len = {{.Decode.MaxVectorLen}}
  # Sets the largest decompressed stream, in bytes. 0 disables the check.
  max_input_bytes = {{.Decode.MaxInputBytes}}

# Configures how objects are written by rconv convert.
[encode]
  # Sets the wire format. Can be "xdr", "ascii" or "native".
  format = "{{.Encode.Format}}"
  # Sets the serialization version. Can be 2 or 3.
  version = {{.Encode.Version}}
  # Sets the outer compression. Can be "none", "gzip" or "xz".
  compression = "{{.Encode.Compression}}"

# Configures rconv inspect.
[inspect]
  # Sets how many files are decoded concurrently.
  workers = {{.Inspect.Workers}}
  # Enables the summary cache, keyed by the content hash of each file.
  cache = {{.Inspect.Cache}}
  # Sets how many nodes of each file are printed.
  max_rows = {{.Inspect.MaxRows}}
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(homeDir string) (*Config, error) {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFilename), os.O_RDONLY, 0755)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(homeDir string) error {
	f, err := os.OpenFile(path.Join(homeDir, ConfigFilename), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl := template.New("defaultConfig")
	t, err := tmpl.Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = t
}
