package model

// Category is the kind of request a prompt represents.
type Category string

const (
	CategorySmallChat Category = "small_chat"
	CategoryCoding    Category = "coding"
	CategoryReasoning Category = "reasoning"
	CategoryChat      Category = "chat"
	CategorySystem    Category = "system"
)

// Complexity bounds.
const (
	MinComplexity = 1
	MaxComplexity = 5
)

// ComplexityAssessment is produced per utterance and never persisted.
type ComplexityAssessment struct {
	Level    int      `json:"level"`
	Category Category `json:"category"`
}

// DefaultAssessment is used whenever classification fails.
func DefaultAssessment() ComplexityAssessment {
	return ComplexityAssessment{Level: MinComplexity, Category: CategoryChat}
}

// ParseCategory maps free text to a Category, falling back to chat.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategorySmallChat, CategoryCoding, CategoryReasoning, CategoryChat, CategorySystem:
		return Category(s)
	case "code":
		return CategoryCoding
	default:
		return CategoryChat
	}
}

// ClampLevel bounds a level to MinComplexity..MaxComplexity.
func ClampLevel(level int) int {
	if level < MinComplexity {
		return MinComplexity
	}
	if level > MaxComplexity {
		return MaxComplexity
	}
	return level
}
