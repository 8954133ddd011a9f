package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints a warning box and asks a yes/no question on out, reading
// the answer from in. Only "y" or "yes" confirm.
func Confirm(in io.Reader, out io.Writer, title string, details map[string]string) bool {
	_, _ = fmt.Fprintln(out, NewWarningResult(title, details).Render())
	_, _ = fmt.Fprint(out, WarningTitleStyle.Render("Proceed? [y/N]: "))

	input, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && input == "" {
		_, _ = fmt.Fprintln(out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}

	_, _ = fmt.Fprintln(out, FooterStyle.Render("Operation cancelled."))
	return false
}
