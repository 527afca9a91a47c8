package llm

import "fmt"

// FieldKeys are the exact JSON keys the model is instructed to return.
var FieldKeys = []string{
	"projectName",
	"projectDuration",
	"humanResourcesHierarchy",
	"projectStages",
	"specialConditions",
	"implementationBoundaries",
}

const promptTemplate = `Analyze the following project document and extract the following information in JSON format:

1. Project Name
2. Duration of the project
3. Hierarchy of human resources needed for the project
4. Stages of the project
5. Special conditions of the project
6. Boundaries of implementing the project (ITIL, governance, cyber security)

Document Content:
%s

Please provide your response in the following JSON format:
{
  "projectName": "...",
  "projectDuration": "...",
  "humanResourcesHierarchy": "...",
  "projectStages": "...",
  "specialConditions": "...",
  "implementationBoundaries": "..."
}`

// BuildPrompt renders the analysis prompt for the combined document text.
func BuildPrompt(combinedText string) string {
	return fmt.Sprintf(promptTemplate, combinedText)
}
