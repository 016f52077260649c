package llm

import _ "embed"

var (
	//go:embed prompts/v1.txt
	promptV1 string
	//go:embed prompts/v2.txt
	promptV2 string
	//go:embed prompts/quiz.txt
	promptQuiz string
)

// PromptTemplate returns the prompt template text for a contract version and
// whether the version was recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case ContractV2:
		return promptV2, true
	case ContractV1:
		return promptV1, true
	case ContractQuiz:
		return promptQuiz, true
	default:
		return promptV2, false
	}
}
