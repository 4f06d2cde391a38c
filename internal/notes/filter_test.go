package notes

import "testing"

func sampleList() []Note {
	return []Note{
		{Title: "Groceries", Content: "Milk, eggs, bread", Category: "personal", Date: "01/02/2026"},
		{Title: "Standup", Content: "Talk about the MILK migration", Category: "work", Date: "01/01/2026"},
		{Title: "Reading list", Content: "Dune", Category: "personal", Date: "12/31/2025"},
	}
}

func indices(matches []Match) []int {
	var out []int
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []int
	}{
		{"everything", Query{Category: CategoryAll}, []int{0, 1, 2}},
		{"empty category means all", Query{}, []int{0, 1, 2}},
		{"case-insensitive content match", Query{Search: "milk", Category: CategoryAll}, []int{0, 1}},
		{"title match", Query{Search: "READ", Category: CategoryAll}, []int{2}},
		{"search is trimmed", Query{Search: "  dune ", Category: CategoryAll}, []int{2}},
		{"category only", Query{Category: "personal"}, []int{0, 2}},
		{"category and search", Query{Search: "milk", Category: "work"}, []int{1}},
		{"no match", Query{Search: "zebra", Category: CategoryAll}, nil},
		{"unknown category", Query{Category: "study"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := indices(Apply(sampleList(), tt.query))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() indices = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Apply() indices = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestApply_CarriesNote(t *testing.T) {
	matches := Apply(sampleList(), Query{Search: "standup", Category: CategoryAll})
	if len(matches) != 1 || matches[0].Note.Title != "Standup" {
		t.Fatalf("unexpected matches %+v", matches)
	}
}
