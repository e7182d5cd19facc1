package cos

import "testing"

func TestCleanSignedOutput(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want string
	}{
		{
			name: "plain url",
			out:  "https://bucket.cos.ap-shanghai.myqcloud.com/x/a.mp4?sign=abc\n",
			want: "https://bucket.cos.ap-shanghai.myqcloud.com/x/a.mp4?sign=abc",
		},
		{
			name: "bytes repr wrapper",
			out:  "b'https://bucket.cos.ap-shanghai.myqcloud.com/x/a.mp4?sign=abc'\n",
			want: "https://bucket.cos.ap-shanghai.myqcloud.com/x/a.mp4?sign=abc",
		},
		{
			name: "trailing chatter on later lines",
			out:  "https://example.com/a.mp4?sign=abc\nDEBUG request took 120ms\n",
			want: "https://example.com/a.mp4?sign=abc",
		},
		{
			name: "surrounding whitespace",
			out:  "  https://example.com/a.mp4  \n",
			want: "https://example.com/a.mp4",
		},
		{
			name: "empty output",
			out:  "\n",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanSignedOutput([]byte(tt.out)); got != tt.want {
				t.Errorf("cleanSignedOutput(%q) = %q, want %q", tt.out, got, tt.want)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	got := PublicURL("texttoaudio-train-1258344703", "ap-shanghai", "hunyuanvideo-foley_demo/x/a.mp4")
	want := "https://texttoaudio-train-1258344703.cos.ap-shanghai.myqcloud.com/hunyuanvideo-foley_demo/x/a.mp4"
	if got != want {
		t.Errorf("PublicURL() = %q, want %q", got, want)
	}
}

func TestExtractRemotePaths(t *testing.T) {
	urls := map[string]string{
		"a.mp4": "https://bucket.cos.ap-shanghai.myqcloud.com/hunyuanvideo-foley_demo/demo_show/a.mp4",
		"b.mp4": "https://bucket.cos.ap-shanghai.myqcloud.com/hunyuanvideo-foley_demo/demo_show/b.mp4?sign=abc",
		"c.mp4": "https://somewhere.else/unrelated/c.mp4",
	}

	paths := ExtractRemotePaths(urls, "hunyuanvideo-foley_demo/")

	if len(paths) != 2 {
		t.Fatalf("ExtractRemotePaths() returned %d paths, want 2: %v", len(paths), paths)
	}
	if got := paths["a.mp4"]; got != "hunyuanvideo-foley_demo/demo_show/a.mp4" {
		t.Errorf("paths[a.mp4] = %q", got)
	}
	// the original mapping keeps whatever follows the marker, query string included
	if got := paths["b.mp4"]; got != "hunyuanvideo-foley_demo/demo_show/b.mp4?sign=abc" {
		t.Errorf("paths[b.mp4] = %q", got)
	}
	if _, ok := paths["c.mp4"]; ok {
		t.Error("URL without the path marker should be excluded")
	}
}

func TestExtractRemotePaths_Empty(t *testing.T) {
	if paths := ExtractRemotePaths(map[string]string{}, "marker/"); len(paths) != 0 {
		t.Errorf("ExtractRemotePaths() on empty mapping = %v", paths)
	}
}
