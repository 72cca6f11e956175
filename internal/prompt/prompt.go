// Package prompt reads validated answers from an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/bikeshare/internal/model"
)

// ErrInputClosed is returned when input ends before an answer is read.
var ErrInputClosed = errors.New("input closed")

// Filter modes accepted by FilterQuestion.
const (
	ModeMonth = "month"
	ModeDay   = "day"
	ModeBoth  = "both"
	ModeNone  = "no"
)

// RestartPrompt asks whether to run another session iteration.
const RestartPrompt = "\nWould you like to restart? Enter yes or no.\n"

// Question is a prompt with a closed set of accepted answers.
type Question struct {
	Prompt  string
	Retry   string
	Choices []string
}

// Normalize lower-cases an answer and drops its line ending.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimRight(answer, "\r\n"))
}

// Valid reports whether the normalized answer is one of the choices.
func (q Question) Valid(answer string) bool {
	answer = Normalize(answer)
	for _, c := range q.Choices {
		if answer == c {
			return true
		}
	}
	return false
}

// CityQuestion asks for one of the given cities.
func CityQuestion(cities []model.City) Question {
	names := make([]string, len(cities))
	titles := make([]string, len(cities))
	for i, c := range cities {
		names[i] = strings.ToLower(c.Name)
		titles[i] = model.Title(c.Name)
	}
	return Question{
		Prompt:  fmt.Sprintf("Would you like to see the data for %s? ", joinOr(titles)),
		Retry:   "Please select only from the given cities: ",
		Choices: names,
	}
}

// FilterQuestion asks how to filter the data.
func FilterQuestion() Question {
	return Question{
		Prompt:  "Would you like to filter the data by month, day, both, or not at all?\nType no if no filtering is required. ",
		Retry:   "Please select from month, day, both, or no: ",
		Choices: []string{ModeMonth, ModeDay, ModeBoth, ModeNone},
	}
}

// MonthQuestion asks for one of the filterable months.
func MonthQuestion() Question {
	return Question{
		Prompt:  "Which month? January, February, March, April, May, or June? ",
		Retry:   "Please select only from the given months: ",
		Choices: model.FilterMonths,
	}
}

// DayQuestion asks for a weekday.
func DayQuestion() Question {
	return Question{
		Prompt:  "Which day? Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, or Sunday? ",
		Retry:   "Please select only from the given days of the week: ",
		Choices: model.FilterDays,
	}
}

// Prompter writes prompts to out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter over the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadLine prints prompt and returns the next input line without its line ending.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(p.out, prompt); err != nil {
		return "", err
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask prompts until a valid answer is given and returns it normalized.
// A blank line is printed after every answer.
func (p *Prompter) Ask(q Question) (string, error) {
	prompt := q.Prompt
	for {
		answer, err := p.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintln(p.out); err != nil {
			return "", err
		}
		if q.Valid(answer) {
			return Normalize(answer), nil
		}
		prompt = q.Retry
	}
}

func joinOr(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
