package quiz

import "context"

// legacyQuestion - запись встроенного набора вопросов.
// Порядок вариантов зафиксирован в полях Option1..Option4, Ans - номер правильного.
type legacyQuestion struct {
	Question string
	Option1  string
	Option2  string
	Option3  string
	Option4  string
	Ans      int
}

var legacyQuestions = []legacyQuestion{
	{
		Question: "Which device is required for the Internet connection?",
		Option1:  "Modem",
		Option2:  "Router",
		Option3:  "LAN Cable",
		Option4:  "Pen Drive",
		Ans:      1,
	},
	{
		Question: "Which continent has the highest number of countries?",
		Option1:  "Asia",
		Option2:  "Europe",
		Option3:  "North America",
		Option4:  "Africa",
		Ans:      4,
	},
	{
		Question: "Junk e-mail is also called?",
		Option1:  "Spam",
		Option2:  "Fake",
		Option3:  "Archived",
		Option4:  "Bin",
		Ans:      1,
	},
	{
		Question: "A computer cannot boot if it does not have the?",
		Option1:  "Compiler",
		Option2:  "Loader",
		Option3:  "Operating System",
		Option4:  "Assembler",
		Ans:      3,
	},
	{
		Question: "First page of Website is termed as?",
		Option1:  "Index page",
		Option2:  "Homepage",
		Option3:  "Sitemap",
		Option4:  "Plugin",
		Ans:      2,
	},
}

func (q legacyQuestion) toQuestion() Question {
	return Question{
		Text:    q.Question,
		Options: []string{q.Option1, q.Option2, q.Option3, q.Option4},
		Correct: q.Ans,
	}
}

// StaticSource возвращает встроенный набор вопросов без перемешивания.
type StaticSource struct {
	questions []legacyQuestion
}

// NewStaticSource создаёт источник со встроенным набором вопросов.
func NewStaticSource() *StaticSource {
	return &StaticSource{questions: legacyQuestions}
}

// Load возвращает копию встроенного набора в исходном порядке.
func (s *StaticSource) Load(_ context.Context) ([]Question, error) {
	if len(s.questions) == 0 {
		return nil, ErrNoQuestions
	}

	questions := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		questions = append(questions, q.toQuestion())
	}

	return questions, nil
}
