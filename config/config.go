package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/drafterhq/drafter/core"
	"github.com/spf13/viper"
)

// LoadConfig reads configuration from file or environment variables. An
// empty configPath falls back to the default search locations.
func LoadConfig(configPath string) (*core.Request, error) {
	req := core.DefaultRequest()

	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("drafter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".drafter"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Environment variables: DRAFTER_PROVIDER, DRAFTER_MODEL_NAME, ...
	// Provider-specific key variables (OPENAI_API_KEY and friends) are
	// resolved later, by the llm package. Unmarshal only sees keys viper
	// already knows about, so each one is bound explicitly.
	v.SetEnvPrefix("DRAFTER")
	v.AutomaticEnv()
	for _, key := range []string{
		"build_description",
		"name",
		"provider",
		"model_name",
		"api_key",
		"base_url",
		"output_roots",
		"instructions",
		"fail_if_exists",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(req); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if len(req.OutputRoots) == 0 {
		req.OutputRoots = []string{"."}
	}
	return req, nil
}
