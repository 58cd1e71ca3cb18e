package domain

import "time"

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the accepted difficulty values.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// QuestionTopics is the fixed set of topics a question may be tagged with.
var QuestionTopics = []string{
	"Algorithms",
	"Arrays",
	"Bit Manipulation",
	"Brainteaser",
	"Databases",
	"Data Structures",
	"Dynamic Programming",
	"Graphs",
	"Greedy",
	"Hash Table",
	"Linked List",
	"Math",
	"Recursion",
	"Sorting",
	"Stack",
	"Strings",
	"Trees",
	"Two Pointers",
}

// IsQuestionTopic reports whether topic belongs to QuestionTopics.
func IsQuestionTopic(topic string) bool {
	for _, t := range QuestionTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// Question is a coding problem in the question bank.
type Question struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Topics      []string   `json:"topics"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
