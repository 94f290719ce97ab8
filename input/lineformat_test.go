package input

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseLineFormat(t *testing.T) {
	for _, tt := range []struct {
		name string
		text string
		want [][]int
	}{
		{
			name: "basic",
			text: "1|-2|3&-1|2",
			want: [][]int{{1, -2, 3}, {-1, 2}},
		},
		{
			name: "single literal clauses",
			text: "1&-2",
			want: [][]int{{1}, {-2}},
		},
		{
			name: "whitespace only",
			text: "   ",
			want: nil,
		},
		{
			name: "spaced",
			text: " 1 | -2 & 3 ",
			want: [][]int{{1, -2}, {3}},
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLineFormat(tt.text)
			if err != nil {
				t.Fatalf("ParseLineFormat: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLineFormatErrors(t *testing.T) {
	for _, text := range []string{"1||2", "1|2&", "1|x"} {
		if _, err := ParseLineFormat(text); err == nil {
			t.Errorf("ParseLineFormat(%q): expected error, got nil", text)
		}
	}
}

func TestLineFormatRoundTrip(t *testing.T) {
	clauses := [][]int{{1, -2, 3}, {-1, 2}}
	got, err := ParseLineFormat(WriteLineFormat(clauses))
	if err != nil {
		t.Fatalf("ParseLineFormat: %v", err)
	}
	if diff := cmp.Diff(clauses, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
