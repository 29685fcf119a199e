package repository

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

func newTestUploadRepo(t *testing.T) *UploadJSONRepository {
	t.Helper()
	repo, err := NewUploadJSONRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadJSONRepository: %v", err)
	}
	return repo
}

func uploadRec(filename, owner string, at time.Time) *model.Upload {
	return &model.Upload{
		UploadedBy: owner,
		Filename:   filename,
		URL:        "https://cdn.example.com/" + filename,
		Tags:       model.TagList{"General Study Material"},
		UploadedAt: at,
	}
}

func TestUploadJSONInsertAndList(t *testing.T) {
	repo := newTestUploadRepo(t)

	base := time.Now()
	for i, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		if err := repo.Insert(uploadRec(name, "teacher1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Insert(%s): %v", name, err)
		}
	}

	uploads, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(uploads) != 3 {
		t.Fatalf("len = %d, want 3", len(uploads))
	}
	// 最新的在前
	if uploads[0].Filename != "c.pdf" || uploads[2].Filename != "a.pdf" {
		t.Errorf("order: %s, %s, %s", uploads[0].Filename, uploads[1].Filename, uploads[2].Filename)
	}
}

func TestUploadJSONDuplicateFilename(t *testing.T) {
	repo := newTestUploadRepo(t)

	if err := repo.Insert(uploadRec("a.pdf", "teacher1", time.Now())); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := repo.Insert(uploadRec("a.pdf", "teacher2", time.Now()))
	if !errors.Is(err, ErrDuplicateFilename) {
		t.Fatalf("err = %v, want ErrDuplicateFilename", err)
	}
}

func TestUploadJSONDeleteWhere(t *testing.T) {
	repo := newTestUploadRepo(t)

	if err := repo.Insert(uploadRec("a.pdf", "teacher1", time.Now())); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// 上传者不匹配时不删
	deleted, err := repo.DeleteWhere("a.pdf", "teacher2")
	if err != nil {
		t.Fatalf("DeleteWhere: %v", err)
	}
	if deleted {
		t.Error("deleted record owned by someone else")
	}

	deleted, err = repo.DeleteWhere("a.pdf", "teacher1")
	if err != nil {
		t.Fatalf("DeleteWhere: %v", err)
	}
	if !deleted {
		t.Error("owner delete reported no match")
	}

	// 幂等：再删一次是无操作
	deleted, err = repo.DeleteWhere("a.pdf", "teacher1")
	if err != nil {
		t.Fatalf("second DeleteWhere: %v", err)
	}
	if deleted {
		t.Error("second delete reported a match")
	}
}

func TestUploadJSONRenameAndRetag(t *testing.T) {
	repo := newTestUploadRepo(t)

	if err := repo.Insert(uploadRec("old.pdf", "teacher1", time.Now())); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	newTags := model.TagList{"Python", "Coding"}
	renamed, err := repo.RenameAndRetag("old.pdf", "python_notes.pdf", "teacher1", newTags, "https://cdn.example.com/python_notes.pdf")
	if err != nil {
		t.Fatalf("RenameAndRetag: %v", err)
	}
	if !renamed {
		t.Fatal("rename reported no match")
	}

	uploads, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(uploads) != 1 {
		t.Fatalf("len = %d, want 1", len(uploads))
	}
	rec := uploads[0]
	if rec.Filename != "python_notes.pdf" {
		t.Errorf("filename = %q", rec.Filename)
	}
	if !rec.Tags.Contains("Python") {
		t.Errorf("tags = %v", rec.Tags)
	}
	if rec.URL != "https://cdn.example.com/python_notes.pdf" {
		t.Errorf("url = %q", rec.URL)
	}
}

func TestUploadJSONRenameConflict(t *testing.T) {
	repo := newTestUploadRepo(t)

	for _, name := range []string{"a.pdf", "b.pdf"} {
		if err := repo.Insert(uploadRec(name, "teacher1", time.Now())); err != nil {
			t.Fatalf("Insert(%s): %v", name, err)
		}
	}

	_, err := repo.RenameAndRetag("a.pdf", "b.pdf", "teacher1", nil, "")
	if !errors.Is(err, ErrDuplicateFilename) {
		t.Fatalf("err = %v, want ErrDuplicateFilename", err)
	}
}

func TestUploadJSONConcurrentInserts(t *testing.T) {
	repo := newTestUploadRepo(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Insert(uploadRec(fmt.Sprintf("file_%02d.pdf", i), "teacher1", time.Now()))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("Insert %d: %v", i, err)
		}
	}

	uploads, err := repo.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(uploads) != n {
		t.Errorf("len = %d, want %d (lost updates)", len(uploads), n)
	}
}

func TestAiLogJSONAppendAndList(t *testing.T) {
	repo, err := NewAiLogJSONRepository(t.TempDir())
	if err != nil {
		t.Fatalf("NewAiLogJSONRepository: %v", err)
	}

	base := time.Now()
	for i := 0; i < 5; i++ {
		entry := &model.AiLog{
			Username:  "student1",
			Question:  fmt.Sprintf("q%d", i),
			Answer:    fmt.Sprintf("a%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.Append(entry); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	logs, err := repo.ListAll(3)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("len = %d, want 3", len(logs))
	}
	if logs[0].Question != "q4" || logs[2].Question != "q2" {
		t.Errorf("order: %s, %s, %s", logs[0].Question, logs[1].Question, logs[2].Question)
	}
}
