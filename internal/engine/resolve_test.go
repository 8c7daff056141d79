package engine

import "testing"

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare id with dash and underscore", "a-b_c-d_e-f", "a-b_c-d_e-f", true},
		{"bare id padded", "  dQw4w9WgXcQ\n", "dQw4w9WgXcQ", true},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch url extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s&list=PL1", "dQw4w9WgXcQ", true},
		{"v not first param", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?si=abcdef", "dQw4w9WgXcQ", true},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"shorts", "https://youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"trailing garbage accepted", "https://youtu.be/dQw4w9WgXcQ!!!garbage", "dQw4w9WgXcQ", true},
		{"empty", "", "", false},
		{"too short", "dQw4w9WgXc", "", false},
		{"too long bare", "dQw4w9WgXcQQ", "", false},
		{"bad alphabet", "dQw4w9WgX!Q", "", false},
		{"url without id", "https://www.youtube.com/", "", false},
		{"short path segment", "https://youtu.be/abc", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveVideoID(tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResolveVideoID(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
