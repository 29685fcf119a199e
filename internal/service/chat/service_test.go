package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

// mockOracle 记录收到的 prompt 并返回固定答案
type mockOracle struct {
	lastPrompt string
	answer     string
	err        error
}

func (m *mockOracle) Complete(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

// mockLogStore 内存问答日志
type mockLogStore struct {
	entries   []*model.AiLog
	appendErr error
}

func (m *mockLogStore) Append(entry *model.AiLog) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockLogStore) ListAll(limit int) ([]*model.AiLog, error) {
	out := make([]*model.AiLog, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func TestAsk(t *testing.T) {
	o := &mockOracle{answer: "A linked list is a chain of nodes."}
	logs := &mockLogStore{}
	svc := NewService(o, logs, nil)

	answer, err := svc.Ask(context.Background(), "student1", "what is a linked list?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "A linked list is a chain of nodes." {
		t.Errorf("answer = %q", answer)
	}

	if len(logs.entries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(logs.entries))
	}
	entry := logs.entries[0]
	if entry.Username != "student1" || entry.Question != "what is a linked list?" || entry.Answer != answer {
		t.Errorf("bad log entry: %+v", entry)
	}
}

func TestAskEmptyQuestion(t *testing.T) {
	svc := NewService(&mockOracle{answer: "x"}, &mockLogStore{}, nil)

	// 空白问题要返回可识别的哨兵错误，调用方据此回 400 而不是 500
	if _, err := svc.Ask(context.Background(), "student1", "   "); !errors.Is(err, ErrEmptyQuestion) {
		t.Errorf("err = %v, want ErrEmptyQuestion", err)
	}
}

func TestAskOracleFailure(t *testing.T) {
	o := &mockOracle{err: errors.New("quota exceeded")}
	logs := &mockLogStore{}
	svc := NewService(o, logs, nil)

	if _, err := svc.Ask(context.Background(), "student1", "hello?"); err == nil {
		t.Fatal("oracle failure should surface")
	}
	if len(logs.entries) != 0 {
		t.Error("failed exchange must not be logged")
	}
}

func TestAskLogFailureStillReturnsAnswer(t *testing.T) {
	o := &mockOracle{answer: "42"}
	logs := &mockLogStore{appendErr: errors.New("disk full")}
	svc := NewService(o, logs, nil)

	answer, err := svc.Ask(context.Background(), "student1", "meaning of life?")
	if err != nil {
		t.Fatalf("log failure must not fail the chat: %v", err)
	}
	if answer != "42" {
		t.Errorf("answer = %q", answer)
	}
}

func TestAskNoOracle(t *testing.T) {
	svc := NewService(nil, &mockLogStore{}, nil)

	if _, err := svc.Ask(context.Background(), "student1", "hello?"); err == nil {
		t.Error("missing oracle should be an error, not a panic")
	}
}

func TestLogsNewestFirst(t *testing.T) {
	o := &mockOracle{answer: "ok"}
	logs := &mockLogStore{}
	svc := NewService(o, logs, nil)

	for _, q := range []string{"q1", "q2", "q3"} {
		if _, err := svc.Ask(context.Background(), "student1", q); err != nil {
			t.Fatalf("Ask(%s): %v", q, err)
		}
	}

	got, err := svc.Logs(context.Background(), 2)
	if err != nil {
		t.Fatalf("Logs: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Question != "q3" || got[1].Question != "q2" {
		t.Errorf("order wrong: %q, %q", got[0].Question, got[1].Question)
	}
}
