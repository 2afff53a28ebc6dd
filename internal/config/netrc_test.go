package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNetrc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "netrc")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write netrc: %v", err)
	}
	return path
}

func TestParseNetrc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    map[string]netrcEntry
	}{
		{
			name: "simple entry",
			content: `machine jira.example.com
login bot@example.com
password secret123`,
			want: map[string]netrcEntry{
				"jira.example.com": {
					Machine:  "jira.example.com",
					Login:    "bot@example.com",
					Password: "secret123",
				},
			},
		},
		{
			name: "multiple entries",
			content: `machine jira.example.com
  login jira-bot
  password jira-token

machine wiki.example.com
  login wiki-bot
  password wiki-token`,
			want: map[string]netrcEntry{
				"jira.example.com": {
					Machine:  "jira.example.com",
					Login:    "jira-bot",
					Password: "jira-token",
				},
				"wiki.example.com": {
					Machine:  "wiki.example.com",
					Login:    "wiki-bot",
					Password: "wiki-token",
				},
			},
		},
		{
			name: "comments and single line form",
			content: `# credentials
machine jira.example.com login bot password tok
default password fallback`,
			want: map[string]netrcEntry{
				"jira.example.com": {
					Machine:  "jira.example.com",
					Login:    "bot",
					Password: "tok",
				},
				"default": {
					Machine:  "default",
					Password: "fallback",
				},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeNetrc(t, tc.content)
			got, err := parseNetrc(path)
			if err != nil {
				t.Fatalf("parseNetrc error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("entry count mismatch: got %d want %d", len(got), len(tc.want))
			}
			for machine, want := range tc.want {
				if got[machine] != want {
					t.Fatalf("entry %s = %+v, want %+v", machine, got[machine], want)
				}
			}
		})
	}
}

func TestParseNetrcMissingFile(t *testing.T) {
	t.Parallel()

	entries, err := parseNetrc(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries, got %v", entries)
	}
}

func TestLookupNetrcToken(t *testing.T) {
	path := writeNetrc(t, `machine jira.example.com
login bot
password exact-token
default
password default-token`)
	t.Setenv("NETRC", path)

	token, err := lookupNetrcToken("https://jira.example.com/context")
	if err != nil {
		t.Fatalf("lookupNetrcToken error: %v", err)
	}
	if token != "exact-token" {
		t.Fatalf("expected exact match, got %q", token)
	}

	token, err = lookupNetrcToken("https://jira.example.com:8443")
	if err != nil {
		t.Fatalf("lookupNetrcToken error: %v", err)
	}
	if token != "exact-token" {
		t.Fatalf("expected port-stripped match, got %q", token)
	}

	token, err = lookupNetrcToken("https://other.example.com")
	if err != nil {
		t.Fatalf("lookupNetrcToken error: %v", err)
	}
	if token != "default-token" {
		t.Fatalf("expected default entry, got %q", token)
	}
}
