package llm

import (
	"strings"
	"testing"
)

func TestBuildPromptEmbedsDocumentText(t *testing.T) {
	prompt := BuildPrompt("--- Document: plan.pdf ---\nProject Atlas\n")
	if !strings.Contains(prompt, "Project Atlas") {
		t.Fatalf("prompt missing document text:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Analyze the following project document") {
		t.Fatalf("prompt missing instruction preamble:\n%s", prompt)
	}
}

func TestBuildPromptNamesEveryFieldKey(t *testing.T) {
	prompt := BuildPrompt("content")
	for _, key := range FieldKeys {
		if !strings.Contains(prompt, `"`+key+`"`) {
			t.Fatalf("prompt does not name key %q:\n%s", key, prompt)
		}
	}
}
