package config

// Config describes the sources to read, the transforms to apply and how
// payloads are written.
type Config struct {
	Output     OutputConfig               `yaml:"output" koanf:"output"`
	Sources    map[string]SourceConfig    `yaml:"sources" koanf:"sources" validate:"required,min=1,dive"`
	Transforms map[string]TransformConfig `yaml:"transforms" koanf:"transforms" validate:"dive"`
	Sink       SinkConfig                 `yaml:"sink" koanf:"sink"`
}

type OutputConfig struct {
	// Reduced leaves timestamp and thread out of every payload.
	Reduced  bool   `yaml:"reduced" koanf:"reduced"`
	Pretty   bool   `yaml:"pretty" koanf:"pretty"`
	Color    bool   `yaml:"color" koanf:"color"`
	LogLevel string `yaml:"log_level" koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error"`
}

type SourceConfig struct {
	Type        string `yaml:"type" koanf:"type" validate:"required,oneof=stdin file docker"`
	Service     string `yaml:"service" koanf:"service"`
	Path        string `yaml:"path,omitempty" koanf:"path" validate:"required_if=Type file"`
	ContainerID string `yaml:"container_id,omitempty" koanf:"container_id" validate:"required_if=Type docker"`
}

type TransformConfig struct {
	Type      string            `yaml:"type" koanf:"type" validate:"required,oneof=remap"`
	Inputs    []string          `yaml:"inputs" koanf:"inputs" validate:"required,min=1"`
	AddFields map[string]string `yaml:"add_fields" koanf:"add_fields"`
	Case      string            `yaml:"case,omitempty" koanf:"case" validate:"omitempty,oneof=upper lower snake camel"`
}

type SinkConfig struct {
	Type   string   `yaml:"type" koanf:"type" validate:"omitempty,oneof=stdout"`
	Inputs []string `yaml:"inputs" koanf:"inputs"`
}

func (c *Config) applyDefaults() {
	if c.Sink.Type == "" {
		c.Sink.Type = "stdout"
	}
	if c.Output.LogLevel == "" {
		c.Output.LogLevel = "info"
	}
}
