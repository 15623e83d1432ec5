package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/drafterhq/drafter/config"
	"github.com/drafterhq/drafter/core"
	"github.com/drafterhq/drafter/llm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "drafter",
	Short: "Drafter is a CLI tool for generating file trees from a build description",
	Long:  `Drafter asks an AI provider for a file-tree description of your build and materializes it onto disk.`,
}

var genCmd = &cobra.Command{
	Use:   "gen [description]",
	Short: "Generate files from a build description",
	Run: func(cmd *cobra.Command, args []string) {
		req, err := buildRequest(cmd, args)
		if err != nil {
			fmt.Printf("Error parsing flags: %v\n", err)
			os.Exit(1)
		}

		model, err := newGenerateModel(req)
		if err != nil {
			fmt.Printf("Error initializing model: %v\n", err)
			os.Exit(1)
		}

		p := tea.NewProgram(model)
		if _, err := p.Run(); err != nil {
			fmt.Printf("Error running program: %v\n", err)
			os.Exit(1)
		}

		model.Shutdown()
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List the supported AI providers",
	Run: func(cmd *cobra.Command, args []string) {
		nameStyle := lipgloss.NewStyle().Bold(true)
		for _, p := range llm.Providers {
			env := "no API key required"
			if p.NeedsKey {
				env = fmt.Sprintf("key from --api-key or %s", p.KeyEnvVar)
			}
			fmt.Printf("%s\tdefault model %s\t(%s)\n", nameStyle.Render(p.Name), p.DefaultModel, env)
		}
	},
}

func init() {
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(providersCmd)

	genCmd.Flags().StringP("name", "n", "", "Instance name substituted for the placeholder token in generated paths and contents")
	genCmd.Flags().StringP("config", "c", "", "Path to custom configuration file")
	genCmd.Flags().StringP("provider", "p", "", "AI provider to use (see 'drafter providers')")
	genCmd.Flags().StringP("model", "m", "", "Model identifier")
	genCmd.Flags().StringP("api-key", "k", "", "Provider API token")
	genCmd.Flags().String("base-url", "", "Override the provider's API base URL")
	genCmd.Flags().StringArrayP("out", "o", nil, "Destination root (repeatable)")
	genCmd.Flags().StringArrayP("instruction", "i", nil, "Extra instruction passed to the model (repeatable)")
	genCmd.Flags().Bool("fail-if-exists", false, "Fail instead of overwriting existing files")
}

func buildRequest(cmd *cobra.Command, args []string) (*core.Request, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	req, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		req.BuildDescription = strings.Join(args, " ")
	}
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		req.Name = v
	}
	if v, _ := cmd.Flags().GetString("provider"); v != "" {
		req.Provider = v
	}
	if v, _ := cmd.Flags().GetString("model"); v != "" {
		req.ModelName = v
	}
	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		req.APIKey = v
	}
	if v, _ := cmd.Flags().GetString("base-url"); v != "" {
		req.BaseURL = v
	}
	if v, _ := cmd.Flags().GetStringArray("out"); len(v) > 0 {
		req.OutputRoots = v
	}
	if v, _ := cmd.Flags().GetStringArray("instruction"); len(v) > 0 {
		req.Instructions = append(req.Instructions, v...)
	}
	if v, _ := cmd.Flags().GetBool("fail-if-exists"); v {
		req.FailIfExists = true
	}

	if _, err := llm.LookupProvider(req.Provider); err != nil {
		return nil, err
	}
	return req, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
