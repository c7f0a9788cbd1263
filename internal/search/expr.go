package search

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mmcdole/stacks/internal/domain"
)

// workEnv is the environment a filter expression sees
type workEnv struct {
	Title    string   `expr:"title"`
	Authors  []string `expr:"authors"`
	Subjects []string `expr:"subjects"`
	Editions int      `expr:"editions"`
	Year     int      `expr:"year"`
	Readable bool     `expr:"readable"`
	HasCover bool     `expr:"has_cover"`
}

func newWorkEnv(w domain.Work) workEnv {
	return workEnv{
		Title:    w.Title,
		Authors:  w.Authors,
		Subjects: w.Subjects,
		Editions: w.EditionCount,
		Year:     w.FirstPublishYear,
		Readable: w.Readable,
		HasCover: w.HasCover(),
	}
}

// Predicate is a compiled boolean filter over works, e.g.
//
//	year < 1900 && editions >= 25
//	"Fiction" in subjects && readable
type Predicate struct {
	source  string
	program *vm.Program
}

// Compile parses expression into a Predicate
func Compile(expression string) (*Predicate, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("filter expression must not be empty")
	}
	program, err := expr.Compile(expression, expr.Env(workEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	return &Predicate{source: expression, program: program}, nil
}

// String returns the source expression
func (p *Predicate) String() string {
	return p.source
}

// Match evaluates the predicate against w
func (p *Predicate) Match(w domain.Work) (bool, error) {
	out, err := expr.Run(p.program, newWorkEnv(w))
	if err != nil {
		return false, fmt.Errorf("evaluate filter %q: %w", p.source, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}

// Select returns the works matching p
func (p *Predicate) Select(works []domain.Work) ([]domain.Work, error) {
	out := make([]domain.Work, 0, len(works))
	for _, w := range works {
		ok, err := p.Match(w)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, w)
		}
	}
	return out, nil
}
