package postprocess

import "testing"

func TestStripComments(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "line comment",
			src:  "a();\n// gone\nb();",
			want: "a();\n\nb();",
		},
		{
			name: "block comment",
			src:  "a(); /* gone */ b();",
			want: "a();  b();",
		},
		{
			name: "multiline block comment",
			src:  "a();/* one\ntwo */b();",
			want: "a();b();",
		},
		{
			name: "marker inside double quotes",
			src:  `log("http://example.com")`,
			want: `log("http://example.com")`,
		},
		{
			name: "marker inside single quotes",
			src:  "log('/* kept */')",
			want: "log('/* kept */')",
		},
		{
			name: "marker inside template literal",
			src:  "log(`// kept`)",
			want: "log(`// kept`)",
		},
		{
			name: "escaped quote does not close string",
			src:  `log("a\" // kept")`,
			want: `log("a\" // kept")`,
		},
		{
			name: "division is not a comment",
			src:  "x = a / b / c",
			want: "x = a / b / c",
		},
		{
			name: "unterminated block comment",
			src:  "a(); /* trailing",
			want: "a(); ",
		},
		{
			name: "line comment at end of input",
			src:  "a(); // last",
			want: "a(); ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripComments(tt.src); got != tt.want {
				t.Errorf("StripComments(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}
