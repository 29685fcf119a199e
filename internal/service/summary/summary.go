// Package summary 为 PDF 学习资料生成面向学生的摘要
package summary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"

	"github.com/divyanshudobhal/learn-x/internal/service/oracle"
)

// maxPromptChars 送入模型的正文截断长度
const maxPromptChars = 8000

// Service PDF 摘要服务
type Service struct {
	oracle oracle.Oracle
}

// NewService 创建摘要服务
func NewService(o oracle.Oracle) *Service {
	return &Service{oracle: o}
}

// Summarize 提取 PDF 正文并生成摘要
// 任何一步失败（解析不出文字、模型出错）都返回错误，
// 上传管线会把它降级成"无摘要"而不是失败
func (s *Service) Summarize(ctx context.Context, path string) (string, error) {
	text, err := extractText(ctx, path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no extractable text in %s", path)
	}

	if len(text) > maxPromptChars {
		text = text[:maxPromptChars]
	}

	prompt := "You are a helpful teaching assistant. Read the following study material " +
		"and create a short summary with:\n" +
		"1. A 3-5 line overview\n" +
		"2. 3-6 key bullet points\n" +
		"3. Difficulty level (Beginner / Intermediate / Advanced)\n\n" +
		"CONTENT:\n" + text

	return s.oracle.Complete(ctx, prompt)
}

// extractText 提取 PDF 全部文本
func extractText(ctx context.Context, path string) (string, error) {
	parser, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return "", fmt.Errorf("failed to create pdf parser: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	docs, err := parser.Parse(ctx, file)
	if err != nil {
		return "", fmt.Errorf("pdf parse failed: %w", err)
	}

	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.Content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
