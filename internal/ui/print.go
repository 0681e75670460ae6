package ui

import (
	"fmt"
	"io"
)

// PrintCommandHeader prints a styled command header followed by a blank line
func PrintCommandHeader(w io.Writer, title, command string, params ...Detail) {
	header := NewHeader(title, command, params...)
	fmt.Fprintln(w, header.Render())
	fmt.Fprintln(w)
}

// PrintResult prints a result box preceded by a blank line
func PrintResult(w io.Writer, r *Result) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Render())
}

// PrintTable prints a table followed by a blank line
func PrintTable(w io.Writer, headers []string, rows [][]string) {
	fmt.Fprintln(w, RenderTable(headers, rows))
	fmt.Fprintln(w)
}
