// Package chat 学习问答：带近期上下文的提问 + 问答留痕
package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/divyanshudobhal/learn-x/internal/model"
	"github.com/divyanshudobhal/learn-x/internal/repository"
	"github.com/divyanshudobhal/learn-x/internal/service/oracle"
)

// ErrEmptyQuestion 问题为空或全是空白
var ErrEmptyQuestion = errors.New("question is empty")

// Service 聊天服务
type Service struct {
	oracle  oracle.Oracle
	logs    repository.AiLogRepository
	history *History // 可为 nil，此时不带上下文
}

// NewService 创建聊天服务
func NewService(o oracle.Oracle, logs repository.AiLogRepository, history *History) *Service {
	return &Service{
		oracle:  o,
		logs:    logs,
		history: history,
	}
}

// Ask 回答一个学习问题
// 问答成功后追加日志和历史，两者失败都不影响返回答案
func (s *Service) Ask(ctx context.Context, username, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}
	if s.oracle == nil {
		return "", fmt.Errorf("ai service is not configured")
	}

	answer, err := s.oracle.Complete(ctx, s.buildPrompt(ctx, username, question))
	if err != nil {
		return "", fmt.Errorf("failed to get answer: %w", err)
	}

	entry := &model.AiLog{
		Username:  username,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now(),
	}
	if err := s.logs.Append(entry); err != nil {
		// 留痕失败只记日志，学生要的是答案
		log.Printf("failed to append ai log for %s: %v", username, err)
	}

	if s.history != nil {
		s.history.Add(ctx, username, Exchange{
			Question: question,
			Answer:   answer,
			AskedAt:  entry.CreatedAt,
		})
	}

	return answer, nil
}

// buildPrompt 把最近几轮问答拼进提示词
func (s *Service) buildPrompt(ctx context.Context, username, question string) string {
	if s.history == nil {
		return question
	}

	recent := s.history.Recent(ctx, username)
	if len(recent) == 0 {
		return question
	}

	var b strings.Builder
	b.WriteString("Earlier in this conversation:\n")
	for _, ex := range recent {
		b.WriteString("Student: ")
		b.WriteString(ex.Question)
		b.WriteString("\nAssistant: ")
		b.WriteString(ex.Answer)
		b.WriteString("\n")
	}
	b.WriteString("\nStudent: ")
	b.WriteString(question)
	return b.String()
}

// Logs 返回最近的问答日志，最新的在前
func (s *Service) Logs(ctx context.Context, limit int) ([]*model.AiLog, error) {
	return s.logs.ListAll(limit)
}
