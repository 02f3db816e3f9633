package models

import "strings"

// CommandType enumerates the chat commands customers can send.
type CommandType string

const (
	CommandQuote   CommandType = "quote"
	CommandCatalog CommandType = "catalog"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form text. The leading slash is optional
// and "prices" is accepted as an alias for the catalog command.
func ParseCommand(message string) Command {
	normalized := strings.TrimSpace(strings.ToLower(message))
	cmd := Command{Raw: message}

	tokens := strings.Fields(normalized)
	if len(tokens) == 0 {
		cmd.Type = CommandUnknown
		return cmd
	}

	switch strings.TrimPrefix(tokens[0], "/") {
	case string(CommandQuote), "estimate":
		cmd.Type = CommandQuote
	case string(CommandCatalog), "prices":
		cmd.Type = CommandCatalog
	case string(CommandHelp), "start":
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
