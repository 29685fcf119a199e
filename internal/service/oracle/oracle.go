// Package oracle 文本生成服务适配层
// 对上层只是 prompt 进、文本出；底层是 eino 的 ChatModel
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/divyanshudobhal/learn-x/internal/config"
)

// Oracle 文本生成接口
type Oracle interface {
	// Complete 对单个提示词生成回答
	// 超时、配额、空回答等都作为错误返回，由调用方决定降级策略
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatModelOracle 基于 eino ChatModel 的实现
type ChatModelOracle struct {
	chatModel model.ChatModel
	timeout   time.Duration
}

// New 根据配置创建文本生成服务
func New(ctx context.Context, cfg *config.AIConfig) (*ChatModelOracle, error) {
	var apiKey, baseURL, modelName string
	var timeout int

	switch cfg.Provider {
	case "openai":
		apiKey = cfg.OpenAI.APIKey
		baseURL = cfg.OpenAI.BaseURL
		modelName = cfg.OpenAI.Model
		timeout = cfg.OpenAI.Timeout
	case "deepseek":
		apiKey = cfg.DeepSeek.APIKey
		baseURL = cfg.DeepSeek.BaseURL
		modelName = cfg.DeepSeek.Model
		timeout = cfg.DeepSeek.Timeout
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", cfg.Provider)
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	if timeout <= 0 {
		timeout = 30
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &ChatModelOracle{
		chatModel: chatModel,
		timeout:   time.Duration(timeout) * time.Second,
	}, nil
}

// Complete 生成回答
func (o *ChatModelOracle) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a helpful assistant for an e-learning platform."},
		{Role: schema.User, Content: prompt},
	}

	resp, err := o.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	if resp.Content == "" {
		return "", fmt.Errorf("model returned empty answer")
	}

	return resp.Content, nil
}
