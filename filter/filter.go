// Package filter selects dataverse contents with expr-lang expressions.
//
// Expressions see one object at a time:
//
//	kind == "dataset" && published && daysSince(publicationDate) < 30
//	isDataverse && lower(title) contains "archive"
//	pid startsWith "doi:10.5072"
//
// The expr builtins (lower, upper, now, len, ...) are available alongside
// the date helpers below.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/dvexamples/dataverse"
)

// Filter is a compiled filter expression
type Filter struct {
	program *vm.Program
	expr    string
}

// helpers are the date functions available to every expression
var helpers = map[string]any{
	"daysSince": func(t time.Time) int {
		return int(time.Since(t).Hours() / 24)
	},
	"daysAgo": func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	},
	"parseDate": func(dateStr string) time.Time {
		t, _ := time.Parse("2006-01-02", dateStr)
		return t
	},
}

// env returns the variables an expression sees for obj
func env(obj dataverse.DvObject) map[string]any {
	e := map[string]any{
		"kind":            obj.Type,
		"id":              obj.ID,
		"title":           obj.Title,
		"pid":             obj.PersistentID(),
		"identifier":      obj.Identifier,
		"publisher":       obj.Publisher,
		"published":       obj.Published(),
		"publicationDate": obj.PublishedAt(),
		"isDataset":       obj.Type == dataverse.TypeDataset,
		"isDataverse":     obj.Type == dataverse.TypeDataverse,
	}
	for name, fn := range helpers {
		e[name] = fn
	}
	return e
}

// Compile compiles a boolean filter expression
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression,
		expr.Env(env(dataverse.DvObject{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	return &Filter{program: program, expr: expression}, nil
}

// String returns the source expression
func (f *Filter) String() string {
	return f.expr
}

// Match evaluates the filter against obj
func (f *Filter) Match(obj dataverse.DvObject) (bool, error) {
	out, err := expr.Run(f.program, env(obj))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, Object: describe(obj), Err: err}
	}

	matched, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{Expression: f.expr, Object: describe(obj), Err: fmt.Errorf("result is %T, not bool", out)}
	}
	return matched, nil
}

// Apply returns the objects matching the filter, in their original order
func (f *Filter) Apply(objs []dataverse.DvObject) ([]dataverse.DvObject, error) {
	var matched []dataverse.DvObject
	for _, obj := range objs {
		ok, err := f.Match(obj)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, obj)
		}
	}
	return matched, nil
}

func describe(obj dataverse.DvObject) string {
	if pid := obj.PersistentID(); pid != "" {
		return fmt.Sprintf("%s %s", obj.Type, pid)
	}
	return fmt.Sprintf("%s %d", obj.Type, obj.ID)
}
