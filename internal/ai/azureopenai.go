package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ClientConfig carries the Azure OpenAI connection settings. It is built from
// application config and handed to the constructor; nothing here is read from
// globals or the environment.
type ClientConfig struct {
	APIKey     string
	Endpoint   string
	Deployment string
	APIVersion string
}

type AzureOpenAIProvider struct {
	cfg    ClientConfig
	Client *http.Client
}

type azureMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type azureChatReq struct {
	Messages []azureMsg `json:"messages"`
}

type azureChatResp struct {
	Choices []struct {
		Message azureMsg `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewAzureOpenAIProvider(cfg ClientConfig) *AzureOpenAIProvider {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-02-15-preview"
	}
	return &AzureOpenAIProvider{
		cfg:    cfg,
		Client: &http.Client{Timeout: 90 * time.Second},
	}
}

func (p *AzureOpenAIProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if p.Client == nil {
		return "", errors.New("azure openai: http client is nil")
	}
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return "", errors.New("azure openai: api key is required")
	}
	if strings.TrimSpace(p.cfg.Endpoint) == "" {
		return "", errors.New("azure openai: endpoint is required")
	}
	if strings.TrimSpace(p.cfg.Deployment) == "" {
		return "", errors.New("azure openai: deployment is required")
	}

	reqBody := azureChatReq{
		Messages: func() []azureMsg {
			out := make([]azureMsg, 0, len(messages))
			for _, m := range messages {
				out = append(out, azureMsg{Role: m.Role, Content: m.Content})
			}
			return out
		}(),
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(p.cfg.Endpoint, "/"), p.cfg.Deployment, p.cfg.APIVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", p.cfg.APIKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("azure openai: %s", msg)
	}

	var decoded azureChatResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if decoded.Error != nil && decoded.Error.Message != "" {
		return "", errors.New(decoded.Error.Message)
	}
	if len(decoded.Choices) == 0 {
		return "", errors.New("azure openai: empty response")
	}
	return decoded.Choices[0].Message.Content, nil
}
