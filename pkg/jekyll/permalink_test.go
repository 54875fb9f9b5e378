package jekyll

import "testing"

func TestPermalink(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		filename string
		date     string
		want     string
		wantErr  bool
	}{
		{
			name:     "Default Jekyll Layout",
			baseURL:  "https://blog.acme.com",
			filename: "_posts/2022-08-01-hello-world.md",
			date:     "2022-08-01",
			want:     "https://blog.acme.com/2022/08/01/hello-world.html",
		},
		{
			name:     "Trailing Slash Base URL",
			baseURL:  "https://blog.acme.com/",
			filename: "2022-08-01-hello-world.md",
			date:     "2022-08-01",
			want:     "https://blog.acme.com/2022/08/01/hello-world.html",
		},
		{
			name:     "Single Digit Month And Day In Filename",
			baseURL:  "https://blog.acme.com",
			filename: "2022-8-1-short.md",
			date:     "2022-08-01",
			want:     "https://blog.acme.com/2022/08/01/short.html",
		},
		{
			name:     "Slug With Dashes",
			baseURL:  "https://blog.acme.com",
			filename: "2023-12-24-a-very-long-slug.md",
			date:     "24 Dec 2023",
			want:     "https://blog.acme.com/2023/12/24/a-very-long-slug.html",
		},
		{
			name:     "Filename Without Date Prefix",
			baseURL:  "https://blog.acme.com",
			filename: "hello-world.md",
			date:     "2022-08-01",
			wantErr:  true,
		},
		{
			name:     "Unparseable Date",
			baseURL:  "https://blog.acme.com",
			filename: "2022-08-01-hello.md",
			date:     "not a date",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Permalink(tt.baseURL, tt.filename, tt.date)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Permalink() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("Permalink() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPermalinkUsesPostDateNotFilenameDate(t *testing.T) {
	// the filename prefix only selects the slug; the URL date comes from
	// the post's own date field
	got, err := Permalink("https://blog.acme.com", "2022-01-01-hello.md", "2022-08-01")
	if err != nil {
		t.Fatalf("Permalink() error = %v", err)
	}
	if got != "https://blog.acme.com/2022/08/01/hello.html" {
		t.Errorf("Permalink() = %q", got)
	}
}
