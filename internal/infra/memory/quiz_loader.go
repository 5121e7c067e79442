package memory

import (
	"context"
	"sort"

	"apple-quiz/internal/domain"
)

// AppleQuizID identifies the built-in quiz.
const AppleQuizID = "apple"

// StaticQuizLoader serves quizzes from an in-memory map.
type StaticQuizLoader struct {
	quizzes map[string]domain.Quiz
}

func NewStaticQuizLoader(quizzes map[string]domain.Quiz) *StaticQuizLoader {
	return &StaticQuizLoader{quizzes: quizzes}
}

// NewBuiltinQuizLoader serves the quizzes compiled into the binary.
func NewBuiltinQuizLoader() *StaticQuizLoader {
	return NewStaticQuizLoader(BuiltinQuizzes())
}

func (l *StaticQuizLoader) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	if quiz, ok := l.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

// List returns every quiz ordered by id.
func (l *StaticQuizLoader) List() []domain.Quiz {
	out := make([]domain.Quiz, 0, len(l.quizzes))
	for _, quiz := range l.quizzes {
		out = append(out, quiz)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BuiltinQuizzes returns the fixed question set.
func BuiltinQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		AppleQuizID: {
			ID:    AppleQuizID,
			Title: "Apple Quiz",
			Items: []domain.QuizItem{
				{Question: "iPhoneを開発している企業はどこ？", Options: []string{"Google", "Apple", "Samsung"}, CorrectAnswerIndex: 1},
				{Question: "Appleの共同創業者は誰？（一人選んでください）", Options: []string{"ビル・ゲイツ", "スティーブ・ウォズニアック", "ラリー・ペイジ"}, CorrectAnswerIndex: 1},
				{Question: "最初のMacintoshが発表された年は？", Options: []string{"1976年", "1984年", "1998年"}, CorrectAnswerIndex: 1},
				{Question: "Appleの本社があるカリフォルニア州の都市は？", Options: []string{"サンフランシスコ", "パロアルト", "クパチーノ"}, CorrectAnswerIndex: 2},
				{Question: "SwiftUIが最初に発表されたWWDCの年は？", Options: []string{"2017", "2019", "2021"}, CorrectAnswerIndex: 1},
			},
		},
	}
}
