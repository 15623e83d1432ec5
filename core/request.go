package core

import (
	"errors"
	"fmt"

	"github.com/drafterhq/drafter/llm"
)

// Request indicates the user's request for a new build.
type Request struct {
	BuildDescription string `mapstructure:"build_description"`
	// Name is the instance name substituted for the placeholder token in
	// the generated blueprint. Empty disables substitution.
	Name string `mapstructure:"name"`

	Provider  string `mapstructure:"provider"`
	ModelName string `mapstructure:"model_name"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`

	Instructions []string `mapstructure:"instructions"`
	OutputRoots  []string `mapstructure:"output_roots"`
	FailIfExists bool     `mapstructure:"fail_if_exists"`
}

// DefaultRequest returns a Request with default values.
func DefaultRequest() *Request {
	return &Request{
		Provider:    "openai",
		OutputRoots: []string{"."},
	}
}

// Validate checks the request before any network call is made.
func (r *Request) Validate() error {
	if r.BuildDescription == "" {
		return errors.New("build description is required")
	}
	p, err := llm.LookupProvider(r.Provider)
	if err != nil {
		return err
	}
	cfg := llm.Config{Provider: r.Provider, APIKey: r.APIKey}
	if p.NeedsKey && llm.ResolveAPIKey(&cfg) == "" {
		return fmt.Errorf("%s API key is required (set %s or pass --api-key)", p.Name, p.KeyEnvVar)
	}
	if len(r.OutputRoots) == 0 {
		return errors.New("at least one output root is required")
	}
	return nil
}

// LlmConfig returns the provider configuration for this request.
func (r *Request) LlmConfig() *llm.Config {
	return &llm.Config{
		Provider:  r.Provider,
		ModelName: r.ModelName,
		APIKey:    r.APIKey,
		BaseURL:   r.BaseURL,
	}
}
