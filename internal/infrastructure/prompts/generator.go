package prompts

import (
	"bytes"
	"text/template"

	"taskchat/internal/application/port/output"
)

type ToolInfo struct {
	Name        string
	Description string
}

type SystemPromptData struct {
	Tools []ToolInfo
}

// GenerateSystemPrompt renders baseTemplate with every tool in the registry,
// in the registry's name order.
func GenerateSystemPrompt(baseTemplate string, registry output.ToolRegistry) (string, error) {
	tools := registry.All()
	infos := make([]ToolInfo, 0, len(tools))

	for _, tool := range tools {
		infos = append(infos, ToolInfo{
			Name:        tool.Name().String(),
			Description: tool.Description(),
		})
	}

	tmpl, err := template.New("system").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, SystemPromptData{Tools: infos}); err != nil {
		return "", err
	}

	return buf.String(), nil
}
