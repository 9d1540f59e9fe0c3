package quiz

import "context"

type AnswerProvider interface {
	Answer(ctx context.Context, question Question) (string, error)
}

type AnswerProviderFunc func(ctx context.Context, question Question) (string, error)

func (f AnswerProviderFunc) Answer(ctx context.Context, question Question) (string, error) {
	return f(ctx, question)
}

// Reporter is implemented by providers that want each scored result, e.g. to
// print feedback before the next question.
type Reporter interface {
	Report(result AnswerResult)
}

// Run asks every question once, in order. It never skips a question and does no
// I/O of its own. A provider error stops the run; results collected so far are
// returned alongside it.
func Run(ctx context.Context, questions []Question, provider AnswerProvider) (int, []AnswerResult, error) {
	reporter, _ := provider.(Reporter)

	score := 0
	results := make([]AnswerResult, 0, len(questions))

	for _, question := range questions {
		given, err := provider.Answer(ctx, question)
		if err != nil {
			return score, results, err
		}

		result := AnswerResult{
			Question:       question.Text,
			ExpectedAnswer: question.Answer,
			GivenAnswer:    given,
			Correct:        Matches(question.Answer, given),
		}
		if result.Correct {
			score++
		}
		results = append(results, result)

		if reporter != nil {
			reporter.Report(result)
		}
	}

	return score, results, nil
}
