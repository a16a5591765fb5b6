package model

// Tier is a class of language-model endpoint.
type Tier string

const (
	TierLocal Tier = "local"
	TierMid   Tier = "mid"
	TierHigh  Tier = "high"
)
