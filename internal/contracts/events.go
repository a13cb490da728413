package contracts

import "time"

// CommandExecutedEvent is the envelope the bot gateway publishes after every
// command execution. This schema is the sole contract the command layer must
// satisfy to participate in usage analytics.
type CommandExecutedEvent struct {
	EventID     string    `json:"event_id"`
	CommandName string    `json:"command_name"`
	UserID      string    `json:"user_id"`
	GuildID     string    `json:"guild_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
	Success     bool      `json:"success"`
	ErrorKind   string    `json:"error_kind,omitempty"`
}
