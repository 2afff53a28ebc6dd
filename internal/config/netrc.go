package config

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// netrcEntry represents credentials for a single machine in .netrc.
// The password field carries the personal access token.
type netrcEntry struct {
	Machine  string
	Login    string
	Password string
}

// parseNetrc reads and parses a .netrc file into a map of machine -> entry.
func parseNetrc(path string) (map[string]netrcEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("netrc: open: %w", err)
	}
	defer file.Close()

	entries := make(map[string]netrcEntry)
	var current netrcEntry
	var hasMachine bool

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		tokens := strings.Fields(line)
		current, hasMachine = processTokens(tokens, current, hasMachine, entries)
	}

	saveEntry(&current, hasMachine, entries)

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("netrc: scan: %w", err)
	}

	return entries, nil
}

func saveEntry(entry *netrcEntry, hasMachine bool, entries map[string]netrcEntry) {
	if hasMachine && entry.Machine != "" {
		entries[entry.Machine] = *entry
	}
}

func processTokens(tokens []string, current netrcEntry, hasMachine bool, entries map[string]netrcEntry) (netrcEntry, bool) {
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "machine":
			saveEntry(&current, hasMachine, entries)
			if i+1 < len(tokens) {
				current = netrcEntry{Machine: tokens[i+1]}
				hasMachine = true
				i++
			}

		case "login":
			if i+1 < len(tokens) {
				current.Login = tokens[i+1]
				i++
			}

		case "password":
			if i+1 < len(tokens) {
				current.Password = tokens[i+1]
				i++
			}

		case "default":
			saveEntry(&current, hasMachine, entries)
			current = netrcEntry{Machine: "default"}
			hasMachine = true
		}
	}
	return current, hasMachine
}

// findNetrcPath locates the .netrc file: NETRC env var first, then ~/.netrc.
func findNetrcPath() string {
	if netrcPath := os.Getenv("NETRC"); netrcPath != "" {
		return netrcPath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".netrc")
}

// lookupNetrcToken returns the netrc password for the host of the given site
// URL. Missing files and absent machines yield an empty token, not an error.
func lookupNetrcToken(site string) (string, error) {
	netrcPath := findNetrcPath()
	if netrcPath == "" {
		return "", nil
	}

	entries, err := parseNetrc(netrcPath)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", nil
	}

	hostname := site
	if parsed, err := url.Parse(site); err == nil && parsed.Host != "" {
		hostname = parsed.Host
	}

	if entry, ok := entries[hostname]; ok {
		return entry.Password, nil
	}

	if host := strings.Split(hostname, ":")[0]; host != hostname {
		if entry, ok := entries[host]; ok {
			return entry.Password, nil
		}
	}

	if entry, ok := entries["default"]; ok {
		return entry.Password, nil
	}

	return "", nil
}
