package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"trivia-quiz/internal/quiz"
)

// consoleProvider asks on out and reads one line per question from reader.
type consoleProvider struct {
	reader *bufio.Reader
	out    io.Writer
	total  int
	asked  int
}

func newConsoleProvider(reader *bufio.Reader, out io.Writer, total int) *consoleProvider {
	return &consoleProvider{reader: reader, out: out, total: total}
}

func (p *consoleProvider) Answer(_ context.Context, question quiz.Question) (string, error) {
	p.asked++
	printQuestion(p.out, p.asked, p.total, question)

	fmt.Fprint(p.out, "Your answer: ")
	line, err := readLine(p.reader)
	if err != nil {
		return "", err
	}

	if choice, ok := choiceForLetter(question.Choices, line); ok {
		return choice, nil
	}
	return line, nil
}

func (p *consoleProvider) Report(result quiz.AnswerResult) {
	if result.Correct {
		fmt.Fprintln(p.out, "Correct!")
		return
	}
	fmt.Fprintf(p.out, "Incorrect. The correct answer is %s.\n", result.ExpectedAnswer)
}

func printQuestion(out io.Writer, number, total int, question quiz.Question) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Q%d/%d: %s\n", number, total, question.Text)
	if len(question.Choices) == 0 {
		return
	}
	fmt.Fprintln(out)
	for idx, choice := range question.Choices {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, choice)
	}
	fmt.Fprintln(out)
}

// choiceForLetter maps a single option letter to its choice text so a
// multiple-choice item can be answered by letter or by typing the answer.
func choiceForLetter(choices []string, input string) (string, bool) {
	if len(choices) == 0 {
		return "", false
	}

	letter := strings.ToUpper(strings.TrimSpace(input))
	if len(letter) != 1 {
		return "", false
	}

	idx := int(letter[0]) - 'A'
	if idx < 0 || idx >= len(choices) {
		return "", false
	}
	return choices[idx], true
}
