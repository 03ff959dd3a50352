package models

import (
	"time"
)

// Файл с моделями, которые передаются между клиентом банка вопросов,
// хранилищем и пакетом quiz. Тексты в моделях хранятся так, как их отдал
// банк вопросов, то есть с HTML-сущностями.

// RawQuestion определяет сырую запись вопроса из банка вопросов.
type RawQuestion struct {
	ID               string    `json:"-"`
	Category         string    `json:"category"`
	Type             string    `json:"type"`
	Difficulty       string    `json:"difficulty"`
	Question         string    `json:"question"`
	CorrectAnswer    string    `json:"correct_answer"`
	IncorrectAnswers []string  `json:"incorrect_answers"`
	CreatedAt        time.Time `json:"-"`
}
