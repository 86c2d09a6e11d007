// Package prompt runs the questionnaire as a plain line-by-line dialogue.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/mindcheck/internal/assessment"
)

// ErrClosed is returned when input ends before every question is answered.
var ErrClosed = errors.New("input closed before the questionnaire was complete")

// Assessor is the part of the assessment service the dialogue needs.
type Assessor interface {
	Assess(ctx context.Context, rec *assessment.FeatureRecord) (*assessment.Result, error)
}

// Prompter asks questions on out and reads answers from in. Invalid
// answers are re-asked until a valid one arrives.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", ErrClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// AskInt re-asks until the answer is an integer within [min, max].
func (p *Prompter) AskInt(question string, min, max int) (int, error) {
	for {
		line, err := p.readLine(fmt.Sprintf("%s (%d-%d): ", question, min, max))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= min && n <= max {
			return n, nil
		}
	}
}

// AskBool re-asks until the answer is yes, y, no or n.
func (p *Prompter) AskBool(question string) (bool, error) {
	for {
		line, err := p.readLine(question + " (yes/no): ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		}
	}
}

// AskAcademic lists the categories with their numbers and re-asks until a
// listed number is entered.
func (p *Prompter) AskAcademic() (assessment.Academic, error) {
	opts := assessment.AcademicOptions()
	listed := make([]string, len(opts))
	for i, o := range opts {
		listed[i] = fmt.Sprintf("%d: %s", i, o)
	}
	fmt.Fprintf(p.out, "Academic performance options: %s\n", strings.Join(listed, ", "))
	for {
		line, err := p.readLine("Enter the number corresponding to your academic performance: ")
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(line)
		if err != nil {
			continue
		}
		if a, ok := assessment.AcademicFromOrdinal(n); ok {
			return a, nil
		}
	}
}

// AskRecord walks the full questionnaire.
func (p *Prompter) AskRecord() (*assessment.FeatureRecord, error) {
	rec := &assessment.FeatureRecord{}
	for _, q := range assessment.Questions {
		switch q.Kind {
		case assessment.KindInt:
			n, err := p.AskInt(q.Text, q.Min, q.Max)
			if err != nil {
				return nil, err
			}
			if err := rec.SetInt(q.Field, n); err != nil {
				return nil, err
			}
		case assessment.KindBool:
			b, err := p.AskBool(q.Text)
			if err != nil {
				return nil, err
			}
			if err := rec.SetBool(q.Field, b); err != nil {
				return nil, err
			}
		case assessment.KindAcademic:
			a, err := p.AskAcademic()
			if err != nil {
				return nil, err
			}
			rec.AcademicPerformance = a
		}
	}
	return rec, nil
}

// Run greets the user, collects a record, assesses it and prints the result.
func Run(ctx context.Context, p *Prompter, svc Assessor) (*assessment.Result, error) {
	fmt.Fprintln(p.out, "Welcome to the Student Mental Health Assessment")
	fmt.Fprintln(p.out, "Please answer the following questions:")

	rec, err := p.AskRecord()
	if err != nil {
		return nil, err
	}

	res, err := svc.Assess(ctx, rec)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(p.out, "\nPredicted Mental Health Condition: %s\n", res.Condition)
	fmt.Fprintln(p.out, "\nExpert Recommendation:")
	fmt.Fprintln(p.out, res.Recommendation)
	if res.Note != "" {
		fmt.Fprintln(p.out, "\nA note for you:")
		fmt.Fprintln(p.out, res.Note)
	}
	return res, nil
}
