package bootstrap

// Log prefixes
const (
	LogPrefixBuild      = "internal.bootstrap.Build"
	LogPrefixLocalTools = "internal.bootstrap.NewLocalTools"
	LogPrefixMemory     = "internal.bootstrap.newMemory"
)
