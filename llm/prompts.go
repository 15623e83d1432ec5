package llm

import (
	"fmt"
	"strings"

	"github.com/drafterhq/drafter/blueprint"
)

// PromptInput carries everything the blueprint prompt is built from.
type PromptInput struct {
	Description string
	// Instructions are optional extra instruction strings appended to the
	// prompt verbatim.
	Instructions []string
	// UseNamePlaceholder asks the model to emit the literal placeholder
	// token wherever the instance name belongs.
	UseNamePlaceholder bool
}

func getSystemPrompt() string {
	return `You are an expert software architect and developer. Your task is to describe the complete file tree of a project as a single JSON document.

Respond with JSON only. Do not wrap the response in markdown code blocks and do not add commentary before or after the JSON.

The response must conform to this JSON schema:

` + blueprint.Schema + `

Rules:
1. Every path starts with "./" and is relative to the project root.
2. Use "directory" entries for directories and "file" entries for files.
3. List a directory before anything inside it.
4. Give every file entry its complete content in the "content" field. Files that should exist empty may omit "content".
5. Do not include package manager lock files, build output, dependency directories, or editor-specific files.`
}

func getBlueprintPrompt(in PromptInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Describe the file tree for the following project:

%s
`, in.Description)

	if in.UseNamePlaceholder {
		fmt.Fprintf(&b, `
Wherever the project's instance name appears in a path or in file content, write the literal token %s instead of inventing a name. The token will be replaced later.
`, blueprint.NamePlaceholder)
	}

	if len(in.Instructions) > 0 {
		b.WriteString("\nAdditional instructions:\n")
		for _, ins := range in.Instructions {
			fmt.Fprintf(&b, "- %s\n", ins)
		}
	}

	return b.String()
}
