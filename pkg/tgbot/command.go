package tgbot

import "strings"

// BotCommand is a bot_command entity split into its parts.
type BotCommand struct {
	// Command is the command name including the leading '/'.
	Command string
	// BotName is the target bot from a "/cmd@bot" suffix, empty when absent.
	BotName string
	// Data is the full covered span.
	Data TextEntityData
}

// EntityType returns TextEntityTypeBotCommand.
func (BotCommand) EntityType() TextEntityType { return TextEntityTypeBotCommand }

// Span returns the full command span.
func (c BotCommand) Span() TextEntityData { return c.Data }

func (BotCommand) isTextEntity() {}

// ParseBotCommand splits a bot_command span on its first '@'.
func ParseBotCommand(data TextEntityData) BotCommand {
	command, botName, _ := strings.Cut(data.Data, "@")

	return BotCommand{
		Command: command,
		BotName: botName,
		Data:    data,
	}
}

// collectCommands returns bot commands in entity order, nil when there are none.
func collectCommands(entities []TextEntity) []BotCommand {
	var commands []BotCommand
	for _, entity := range entities {
		if command, ok := entity.(BotCommand); ok {
			commands = append(commands, command)
		}
	}

	return commands
}
