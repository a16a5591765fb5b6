package telegram

import "time"

const (
	LogPrefixWebhook = "internal.telegram.HandleWebhook"
	LogPrefixProcess = "internal.telegram.process"

	SessionPrefix       = "telegram_"
	DefaultReplyTimeout = 2 * time.Minute
)

// Bot commands
const (
	CommandStart = "/start"
	CommandHelp  = "/help"
)

// Chat replies
const (
	MsgWelcome = "Hi! Ask me anything, or try \"what's the weather in Chennai?\", " +
		"\"take a note: call mom\" or \"remember that my bike is blue\"."
	MsgHelp = "Send a message like you would say it out loud. I can check the time, " +
		"weather, your notes and calendar, and I remember facts you tell me with \"remember that ...\"."
	MsgVoiceUnsupported = "I can only read text messages here."
	MsgNotExecuted      = "I can't do \"%s\" from chat."
	MsgFailed           = "Something went wrong while answering. Please try again."
)
