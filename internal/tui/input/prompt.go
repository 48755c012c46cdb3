// Package input parses what the user types into the TUI prompt.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Args        string // argument hint, empty for none
	Description string
}

// Usage returns the name followed by the argument hint.
func (c PromptCommand) Usage() string {
	if c.Args == "" {
		return c.Name
	}
	return c.Name + " " + c.Args
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Input without a leading slash, or already past the command name, matches
// nothing.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimLeft(input, " ")
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(trimmed, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
// Commands that take arguments complete with a trailing space.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	if matches[0].Args == "" {
		return matches[0].Name, true
	}
	return matches[0].Name + " ", true
}

// Parse splits a submitted line into a lower-cased command name and its
// argument. A line without a leading slash is returned as the argument of
// defaultCmd, so "1403/01/15" reads as "/goto 1403/01/15".
func Parse(line, defaultCmd string) (name, arg string) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return defaultCmd, line
	}
	name, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}
