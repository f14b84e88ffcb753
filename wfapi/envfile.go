package wfapi

import (
	"bufio"
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// ParseEnvFile decodes an environment-file payload into a key/value map
// following the dotenv convention: one KEY=VALUE per line, blank lines and
// `#` comments ignored, an optional `export ` prefix tolerated, and values
// unwrapped from surrounding single or double quotes.
func ParseEnvFile(data []byte) (map[string]string, error) {
	env := map[string]string{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("malformed environment file: line %d: missing '='", lineNo)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("malformed environment file: line %d: empty key", lineNo)
		}

		env[key] = unquote(strings.TrimSpace(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading environment file: %w", err)
	}

	return env, nil
}

func unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// FormatEnvFile renders a key/value map back into environment-file form with
// keys sorted, so the output is deterministic.
func FormatEnvFile(env map[string]string) []byte {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		fmt.Fprintf(&buf, "%s=%s\n", k, env[k])
	}
	return buf.Bytes()
}
