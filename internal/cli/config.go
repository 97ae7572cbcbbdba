package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	semver "github.com/Masterminds/semver/v3"

	qxerrors "github.com/qxad-lang/qxad/internal/errors"
	"github.com/qxad-lang/qxad/internal/frontend"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = "qxad.toml"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the qxad.toml configuration
type Config struct {
	// Requires is a semver constraint the running tool must satisfy
	Requires string       `toml:"requires"`
	Lexer    LexerConfig  `toml:"lexer"`
	Output   OutputConfig `toml:"output"`
	Server   ServerConfig `toml:"server"`
	Log      LogConfig    `toml:"log"`
}

// LexerConfig holds front end settings
type LexerConfig struct {
	PEDefault bool `toml:"pe_default"`
}

// OutputConfig controls how results are rendered
type OutputConfig struct {
	Format string `toml:"format"`
	Color  bool   `toml:"color"`
}

// ServerConfig holds the HTTP service settings
type ServerConfig struct {
	Addr     string `toml:"addr"`
	HTTP3    bool   `toml:"http3"`
	CertFile string `toml:"cert_file"`
	KeyFile  string `toml:"key_file"`

	// SelfSigned generates an in-memory certificate when no files are set
	SelfSigned bool `toml:"self_signed"`
}

// HasCertFiles reports whether both certificate paths are set
func (s ServerConfig) HasCertFiles() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// LogConfig holds logger settings
type LogConfig struct {
	Verbose bool `toml:"verbose"`
	Debug   bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		Lexer:  LexerConfig{PEDefault: frontend.DefaultOptions().PE},
		Output: OutputConfig{Format: FormatText},
		Server: ServerConfig{Addr: ":8443"},
	}
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	configPath = os.ExpandEnv(configPath)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	md, err := toml.DecodeFile(configPath, config)
	if err != nil {
		return nil, qxerrors.ConfigInvalid(configPath, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, qxerrors.ConfigInvalid(configPath, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}

	if err := config.Validate(); err != nil {
		return nil, qxerrors.ConfigInvalid(configPath, err)
	}
	if err := config.CheckRequires(Version); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges that TOML decoding cannot express
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be one of text, json, yaml; got %q", c.Output.Format)
	}
	if c.Server.HTTP3 && !c.Server.HasCertFiles() && !c.Server.SelfSigned {
		return fmt.Errorf("server.http3 requires server.cert_file and server.key_file, or server.self_signed")
	}
	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return fmt.Errorf("requires: %w", err)
		}
	}
	return nil
}

// CheckRequires verifies that version satisfies the requires constraint
func (c *Config) CheckRequires(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return qxerrors.ConfigInvalid("requires", err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return qxerrors.ConfigInvalid("version", err)
	}
	if ok, problems := constraint.Validate(v); !ok {
		return qxerrors.IncompatibleVersion(c.Requires, version, problems)
	}
	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
