package router

import "voice-assistant/internal/model"

// Label is the coarse answer of the label classifier.
type Label string

const (
	LabelSearch Label = "search"
	LabelVision Label = "vision"
	LabelCode   Label = "code"
	LabelSystem Label = "system"
	LabelChat   Label = "chat"
)

// precedence orders rule classes. Lower values are tried first.
type precedence int

const (
	// classFolder holds "open" phrases that name a folder rather than an app.
	classFolder precedence = iota
	// classApp holds the "open X" / "close X" patterns.
	classApp
	// classPhrase holds specific multi-word triggers.
	classPhrase
	// classCommand holds generic verb patterns such as "install X".
	classCommand
	// classKeyword holds single-word catch-alls.
	classKeyword
)

// input is one utterance as seen by the rules.
type input struct {
	text     string // normalized
	original string // trimmed, case preserved
}

// rule is one entry of the cascade.
type rule struct {
	name  string
	class precedence
	match func(in input) (model.Intent, bool)
}
