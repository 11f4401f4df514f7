// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

// FormatTask formats a task line for the list command.
// Format: "{ID:>4}  {DESCRIPTION}  [{STATUS}]\n"
func FormatTask(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4d  %s  [%s]\n", task.ID, normalizeText(task.Description), normalizeText(task.Status))
}

// FormatIndexed formats a task line for the console menu, numbered from 1.
// Format: "{N}. {DESCRIPTION} ({STATUS}) #{ID}\n"
func FormatIndexed(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%d. %s (%s) #%d\n", num, normalizeText(task.Description), normalizeText(task.Status), task.ID)
}

// RemoteTitle is the title a local task gets when pushed to a remote list.
func RemoteTitle(task service.Task) string {
	return fmt.Sprintf("%s [%s]", normalizeText(task.Description), normalizeText(task.Status))
}

// normalizeText normalizes a field for single-line display.
// - Newlines are replaced with spaces
// - Empty or whitespace-only values become "(untitled)"
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")

	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
