package apptests

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultFrontendBaseURL = "http://localhost:3001"
const defaultBackendBaseURL = "http://localhost:3000"
const defaultRequestTimeout = 10 * time.Second

// TargetConfig describes the deployed application under test. The harness
// treats the application as a black box reachable at these two base URLs.
type TargetConfig struct {
	FrontendBaseURL string   `yaml:"frontendBaseURL"`
	BackendBaseURL  string   `yaml:"backendBaseURL"`
	RequestTimeout  Duration `yaml:"requestTimeout"`
	Headless        bool     `yaml:"headless"`
}

// Duration is a time.Duration that is written as a string like "10s" in the
// YAML config file.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func DefaultTargetConfig() TargetConfig {
	return TargetConfig{
		FrontendBaseURL: defaultFrontendBaseURL,
		BackendBaseURL:  defaultBackendBaseURL,
		RequestTimeout:  Duration(defaultRequestTimeout),
		Headless:        true,
	}
}

// LoadConfigFile reads a YAML file of overrides on top of the defaults, so a
// partial file is fine.
func LoadConfigFile(path string) (TargetConfig, error) {
	config := DefaultTargetConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	return config, nil
}

func (c TargetConfig) frontendURL(path string) string {
	return strings.TrimRight(c.FrontendBaseURL, "/") + path
}

func (c TargetConfig) graphQLEndpoint() string {
	return strings.TrimRight(c.BackendBaseURL, "/") + "/graphql"
}
