package query

import (
	"reflect"
	"testing"

	"github.com/divyanshudobhal/learn-x/internal/model"
)

func upload(filename string, tags ...string) *model.Upload {
	return &model.Upload{Filename: filename, Tags: tags, UploadedBy: "teacher1"}
}

func names(records []*model.Upload) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Filename)
	}
	return out
}

func sample() []*model.Upload {
	return []*model.Upload{
		upload("a.pdf", "Python", "Programming"),
		upload("b.jpg", "General Study Material"),
		upload("c.mp4", "Networking"),
		upload("d.txt", "SQL", "Database"),
	}
}

func TestSearchEmptyQueryReturnsInput(t *testing.T) {
	records := sample()

	got := Search(records, "")
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Search with empty query changed the result: %v", names(got))
	}

	got = Search(records, "   ")
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Search with blank query changed the result: %v", names(got))
	}
}

func TestSearchMatchesFilenameOrTags(t *testing.T) {
	records := sample()

	tests := []struct {
		q    string
		want []string
	}{
		{"a.pdf", []string{"a.pdf"}},
		{"PYTHON", []string{"a.pdf"}},        // 标签，大小写不敏感
		{"sql", []string{"d.txt"}},           // 标签子串
		{"net", []string{"c.mp4"}},           // 标签前缀
		{".", []string{"a.pdf", "b.jpg", "c.mp4", "d.txt"}},
		{"nothing-matches", []string{}},
	}

	for _, tt := range tests {
		got := names(Search(records, tt.q))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Search(%q) = %v, want %v", tt.q, got, tt.want)
		}
	}
}

func TestSearchIsSubsetAndPreservesOrder(t *testing.T) {
	records := sample()

	got := Search(records, "p")
	idx := 0
	for _, rec := range got {
		found := false
		for ; idx < len(records); idx++ {
			if records[idx] == rec {
				found = true
				idx++
				break
			}
		}
		if !found {
			t.Fatalf("Search result %q not an ordered subset of input", rec.Filename)
		}
	}
}

func TestFilterByTypePartition(t *testing.T) {
	records := sample()

	tests := []struct {
		kind string
		want []string
	}{
		{"pdf", []string{"a.pdf"}},
		{"image", []string{"b.jpg"}},
		{"video", []string{"c.mp4"}},
		{"doc", []string{"d.txt"}},
		{"all", []string{"a.pdf", "b.jpg", "c.mp4", "d.txt"}},
		{"other", []string{"a.pdf", "b.jpg", "c.mp4", "d.txt"}},
		{"bogus", []string{"a.pdf", "b.jpg", "c.mp4", "d.txt"}}, // 未知类型放行
	}

	for _, tt := range tests {
		got := names(FilterByType(records, tt.kind))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterByType(%q) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestFilterByTypeDoesNotMutateInput(t *testing.T) {
	records := sample()
	before := names(records)

	FilterByType(records, "pdf")
	Search(records, "python")

	if !reflect.DeepEqual(names(records), before) {
		t.Error("input slice was mutated")
	}
}

func TestSearchComposesWithFilter(t *testing.T) {
	records := sample()

	got := names(FilterByType(Search(records, "."), "doc"))
	if !reflect.DeepEqual(got, []string{"d.txt"}) {
		t.Errorf("composed search+filter = %v, want [d.txt]", got)
	}
}

func TestByOwner(t *testing.T) {
	records := sample()
	records[1].UploadedBy = "teacher2"

	got := names(ByOwner(records, "teacher1"))
	if !reflect.DeepEqual(got, []string{"a.pdf", "c.mp4", "d.txt"}) {
		t.Errorf("ByOwner = %v", got)
	}
}
