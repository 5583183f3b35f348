package model

// Option is a single answer choice tagged with the style it counts toward.
type Option struct {
	Label    string   `json:"text"`
	Category Category `json:"type"`
}

// Question is one prompt from the question bank. Every question carries
// exactly one option per category; option order has no effect on scoring.
type Question struct {
	ID      int      `json:"id"`
	Prompt  string   `json:"question"`
	Options []Option `json:"options"`
}

// HasOption reports whether the question offers an option for the category.
func (q Question) HasOption(c Category) bool {
	for _, o := range q.Options {
		if o.Category == c {
			return true
		}
	}
	return false
}

// Profile is the descriptive content for one behavioral style.
type Profile struct {
	Category    Category `json:"category"`
	DisplayName string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	WorkStyle   string   `json:"work_style"`
	Strengths   []string `json:"strengths"`
	Challenges  []string `json:"challenges"`
}

// Answer records the option category chosen for a question. A session
// keeps at most one answer per question id; re-answering overwrites.
type Answer struct {
	QuestionID int      `json:"question_id"`
	Category   Category `json:"category"`
}
