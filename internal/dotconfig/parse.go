package dotconfig

import (
	"bufio"
	"io"
	"os"
	"strings"

	kcerrors "kconfgen.dev/kconfgen/internal/errors"
)

// ParseFile reads a .config file into a Set
func ParseFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads .config text into a Set. Accepted lines are NAME=VALUE,
// "# NAME is not set", comments and blanks. The CONFIG_ prefix on names is
// optional and stripped. Malformed lines yield a *kcerrors.ParseError
// carrying the file name and line number.
func Parse(filename string, r io.Reader) (*Set, error) {
	set := NewSet()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			if name, ok := parseNotSetLine(line); ok {
				set.Put(name, Entry{Value: "n"})
			}
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, kcerrors.NewParseError(filename, lineno, line, "expected NAME=VALUE")
		}
		name = trimPrefix(strings.TrimSpace(name))
		if !isOptionName(name) {
			return nil, kcerrors.NewParseError(filename, lineno, line, "invalid option name")
		}

		entry, err := parseValue(strings.TrimSpace(value))
		if err != nil {
			return nil, kcerrors.NewParseError(filename, lineno, line, err.Error())
		}
		set.Put(name, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// parseNotSetLine recognizes "# CONFIG_NAME is not set"
func parseNotSetLine(line string) (string, bool) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	name, ok := strings.CutSuffix(rest, " is not set")
	if !ok {
		return "", false
	}
	name = trimPrefix(strings.TrimSpace(name))
	if !isOptionName(name) {
		return "", false
	}
	return name, true
}

func parseValue(value string) (Entry, error) {
	if len(value) >= 2 && value[0] == '"' {
		if value[len(value)-1] != '"' {
			return Entry{}, errUnterminated
		}
		return Entry{Value: unescape(value[1 : len(value)-1]), Quoted: true}, nil
	}
	if strings.ContainsAny(value, " \t\"") {
		return Entry{}, errBadValue
	}
	return Entry{Value: value}, nil
}

var (
	errUnterminated = strError("unterminated string value")
	errBadValue     = strError("invalid value")
)

type strError string

func (e strError) Error() string { return string(e) }

func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	var sb strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			sb.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func trimPrefix(name string) string {
	return strings.TrimPrefix(name, Prefix)
}

func isOptionName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r != '_' && (r < '0' || r > '9') && (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
