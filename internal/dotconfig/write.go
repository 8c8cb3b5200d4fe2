package dotconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Write serializes the set in kernel .config format, in insertion order.
// Disabled tristate options are written as "# CONFIG_NAME is not set" so the
// output parses back to an identical set.
func (s *Set) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, name := range s.names {
		e := s.values[name]
		switch {
		case !e.Quoted && e.Value == "n":
			fmt.Fprintf(bw, "# %s%s is not set\n", Prefix, name)
		case e.Quoted:
			fmt.Fprintf(bw, "%s%s=\"%s\"\n", Prefix, name, escape(e.Value))
		default:
			fmt.Fprintf(bw, "%s%s=%s\n", Prefix, name, e.Value)
		}
	}
	return bw.Flush()
}

// WriteFile writes the set to a file, creating or truncating it
func (s *Set) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// String renders the set in .config format
func (s *Set) String() string {
	var sb strings.Builder
	_ = s.Write(&sb)
	return sb.String()
}

// escape quotes backslashes and double quotes the way the kernel's conf
// tool does
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
