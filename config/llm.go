package config

import (
	"os"
)

type LLMConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func LoadLLMConfig() *LLMConfig {
	baseURL := os.Getenv("LLM_API_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &LLMConfig{
		BaseURL: baseURL,
		APIKey:  os.Getenv("LLM_API_KEY"),
		Model:   model,
	}
}
