package tag

import (
	"reflect"
	"testing"
)

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

func TestForDeterministic(t *testing.T) {
	names := []string{
		"python_basics.pdf",
		"cloud_sql_notes.txt",
		"xyz123.bin",
		"",
		"ОПЕРАЦИОННЫЕ_СИСТЕМЫ.txt",
	}

	for _, name := range names {
		first := For(name)
		second := For(name)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("For(%q) not deterministic: %v vs %v", name, first, second)
		}
	}
}

func TestForNeverEmpty(t *testing.T) {
	names := []string{"", "x", "....", "12345", "python.pdf", "zzz.mp4"}

	for _, name := range names {
		if tags := For(name); len(tags) == 0 {
			t.Errorf("For(%q) returned empty tag set", name)
		}
	}
}

func TestForUnionsMatchingRules(t *testing.T) {
	got := toSet(For("cloud_sql_notes.txt"))

	for _, want := range []string{"Cloud", "AWS", "SQL", "Database"} {
		if _, ok := got[want]; !ok {
			t.Errorf("For(cloud_sql_notes.txt) missing %q, got %v", want, got)
		}
	}
}

func TestForFallback(t *testing.T) {
	got := For("xyz123.bin")

	want := []string{FallbackLabel}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("For(xyz123.bin) = %v, want %v", got, want)
	}
}

func TestForTable(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     []string
	}{
		{
			name:     "python also matches the broad c rule via basics",
			filename: "python_basics.pdf",
			want:     []string{"C Language", "Coding", "Python", "Programming"},
		},
		{
			name:     "java and oop",
			filename: "JAVA_oop.pptx",
			want:     []string{"Java", "OOP"},
		},
		{
			name:     "os rule matches substring",
			filename: "my_os_notes.txt",
			want:     []string{"Operating System"},
		},
		{
			// 历史行为：单字母 c 规则命中 lecture
			name:     "lecture matches the c rule",
			filename: "lecture.pdf",
			want:     []string{"C Language", "Coding"},
		},
		{
			name:     "dsa and data are one rule",
			filename: "data_structures.doc",
			want:     []string{"Algorithms", "C Language", "Coding", "Data Structures"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toSet(For(tt.filename))
			want := toSet(tt.want)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("For(%q) = %v, want %v", tt.filename, got, want)
			}
		})
	}
}
