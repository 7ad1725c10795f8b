package model

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type QuestionType string

const (
	TypeGeneral        QuestionType = "General"
	TypeCurrentAffairs QuestionType = "Current Affairs"
)

// Question is the atomic content unit: one MCQ with four options keyed A-D.
// swagger:model Question
type Question struct {
	BaseModel
	Question      string       `gorm:"type:text;not null" json:"question"`
	OptionA       string       `gorm:"type:text;not null" json:"optionA"`
	OptionB       string       `gorm:"type:text;not null" json:"optionB"`
	OptionC       string       `gorm:"type:text;not null" json:"optionC"`
	OptionD       string       `gorm:"type:text;not null" json:"optionD"`
	CorrectAnswer string       `gorm:"size:1;not null" json:"correctAnswer"` // A|B|C|D, hidden from learner payloads by the service layer
	Explanation   string       `gorm:"type:text;not null" json:"explanation"`
	Category      string       `gorm:"size:100;index;not null" json:"category"`
	Subcategory   string       `gorm:"size:100;index" json:"subcategory"`
	Difficulty    Difficulty   `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Type          QuestionType `gorm:"size:20;index;default:'General'" json:"type"`
	QuestionDate  string       `gorm:"size:10;index" json:"questionDate"` // YYYY-MM-DD
	Active        bool         `gorm:"default:true" json:"active"`
}

func (Question) TableName() string {
	return "questions"
}

// Option returns the option text for a letter, empty string for anything else.
func (q *Question) Option(letter string) string {
	switch letter {
	case "A":
		return q.OptionA
	case "B":
		return q.OptionB
	case "C":
		return q.OptionC
	case "D":
		return q.OptionD
	}
	return ""
}
