package dispatcher

// Log prefixes
const (
	LogPrefixDispatch = "internal.dispatcher.Dispatch"
	LogPrefixNew      = "internal.dispatcher.NewFromConfig"
)

// ContextMemoriesHeader separates the persona from retrieved memories.
const ContextMemoriesHeader = "\n\nContext Memories:\n"

// ErrMsgLocalFailure is spoken when even the local tier cannot answer.
const ErrMsgLocalFailure = "Local Error: %v"
