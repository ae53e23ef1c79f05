package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"chart": "bar"}`,
			want:  `{"chart": "bar"}`,
		},
		{
			name:  "json code fence",
			input: "```json\n{\"chart\": \"bar\"}\n```",
			want:  `{"chart": "bar"}`,
		},
		{
			name:  "surrounding prose",
			input: `Sure! Here you go: {"chart": "line", "x": "month"} hope that helps`,
			want:  `{"chart": "line", "x": "month"}`,
		},
		{
			name:  "nested object",
			input: `{"a": {"b": 1}, "c": [2, 3]}`,
			want:  `{"a": {"b": 1}, "c": [2, 3]}`,
		},
		{
			name:  "braces inside strings",
			input: `{"title": "use {x} and }"}`,
			want:  `{"title": "use {x} and }"}`,
		},
		{
			name:  "array",
			input: `some text [1, 2, 3] more text`,
			want:  `[1, 2, 3]`,
		},
		{
			name:    "no json at all",
			input:   "a bar chart would work here",
			wantErr: true,
		},
		{
			name:    "unbalanced",
			input:   `{"chart": "bar"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type chart struct {
		Chart string `json:"chart"`
		Title string `json:"title"`
	}

	got, err := ParseJSONResponse[chart]("```json\n{\"chart\": \"pie\", \"title\": \"Share\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Chart != "pie" || got.Title != "Share" {
		t.Errorf("got %+v", got)
	}

	if _, err := ParseJSONResponse[chart]("not json"); err == nil {
		t.Error("expected error for non-JSON input")
	}
}
