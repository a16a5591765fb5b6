package assistant

// Log prefixes
const (
	LogPrefixHandle = "internal.assistant.Handle"
	LogPrefixSkills = "internal.assistant.LocalSkills"
)

// Memory command prefixes, matched case-insensitively.
var rememberPrefixes = []string{"remember that", "remember:"}

// ModeHintFormat tags code and system requests for the model.
const ModeHintFormat = " [MODE: %s]"

// Spoken responses
const (
	MsgRemembered     = "I remembered: %s"
	MsgRememberFailed = "Failed to save memory."
)
