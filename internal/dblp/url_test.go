package dblp

import "testing"

func TestIsProfileURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"canonical", "https://dblp.org/pid/154/4313.html", true},
		{"no extension", "https://dblp.org/pid/154/4313", true},
		{"mirror host", "https://dblp.uni-trier.de/pid/154/4313.html", true},
		{"wrong host", "https://example.org/pid/154/4313.html", false},
		{"no pid path", "https://dblp.org/search?q=smith", false},
		{"garbage", "not a url", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProfileURL(tt.url); got != tt.want {
				t.Errorf("IsProfileURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestPID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"html suffix", "https://dblp.org/pid/154/4313.html", "154/4313"},
		{"bare", "https://dblp.org/pid/154/4313", "154/4313"},
		{"alpha pid", "https://dblp.org/pid/h/JohnSmith.html", "h/JohnSmith"},
		{"missing", "https://dblp.org/search", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PID(tt.url); got != tt.want {
				t.Errorf("PID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestNormalizeProfileURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"already canonical", "https://dblp.org/pid/154/4313.html", "https://dblp.org/pid/154/4313.html", false},
		{"missing scheme", "dblp.org/pid/154/4313", "https://dblp.org/pid/154/4313.html", false},
		{"mirror preserved", "https://dblp.uni-trier.de/pid/154/4313", "https://dblp.uni-trier.de/pid/154/4313.html", false},
		{"not dblp", "https://example.org/pid/1/2", "", true},
		{"no pid", "https://dblp.org/", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeProfileURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeProfileURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeProfileURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestBibURL(t *testing.T) {
	if got := BibURL("https://dblp.org", "154/4313"); got != "https://dblp.org/pid/154/4313.bib" {
		t.Errorf("BibURL() = %q", got)
	}
	if got := BibURL("http://localhost:8080/", "1/2"); got != "http://localhost:8080/pid/1/2.bib" {
		t.Errorf("BibURL() = %q", got)
	}
}
