package model

import (
	"encoding/json"
	"fmt"
)

type QuestionType string

const (
	QuestionMCQ         QuestionType = "mcq"
	QuestionTrueFalse   QuestionType = "true_false"
	QuestionShortAnswer QuestionType = "short_answer"
)

// Question 练习题。CorrectIndex 仅对 mcq 有意义，CorrectAnswer 仅对 true_false 有意义，
// 序列化时两者都输出为 "correct" 字段。
// swagger:model
type Question struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectIndex  int          `json:"-"`
	CorrectAnswer bool         `json:"-"`
	Hint          string       `json:"hint"`
	Answer        string       `json:"answer"`
}

type questionJSON struct {
	Type     QuestionType    `json:"type"`
	Question string          `json:"question"`
	Options  []string        `json:"options,omitempty"`
	Correct  json.RawMessage `json:"correct,omitempty"`
	Hint     string          `json:"hint"`
	Answer   string          `json:"answer"`
}

func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{
		Type:     q.Type,
		Question: q.Question,
		Options:  q.Options,
		Hint:     q.Hint,
		Answer:   q.Answer,
	}

	var err error
	switch q.Type {
	case QuestionMCQ:
		out.Correct, err = json.Marshal(q.CorrectIndex)
	case QuestionTrueFalse:
		out.Correct, err = json.Marshal(q.CorrectAnswer)
	}
	if err != nil {
		return nil, err
	}

	return json.Marshal(out)
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*q = Question{
		Type:     in.Type,
		Question: in.Question,
		Options:  in.Options,
		Hint:     in.Hint,
		Answer:   in.Answer,
	}

	if len(in.Correct) == 0 {
		return nil
	}
	switch in.Type {
	case QuestionMCQ:
		if err := json.Unmarshal(in.Correct, &q.CorrectIndex); err != nil {
			return fmt.Errorf("mcq correct index: %w", err)
		}
	case QuestionTrueFalse:
		if err := json.Unmarshal(in.Correct, &q.CorrectAnswer); err != nil {
			return fmt.Errorf("true_false correct value: %w", err)
		}
	}
	return nil
}
