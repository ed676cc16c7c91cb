package project

import (
	"fmt"
	"os"
	"regexp"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.trai.ch/zerr"
)

// Env is the environment {{ }} expressions in a description are evaluated
// against.
type Env struct {
	TargetOS   string            `expr:"target_os"`
	TargetArch string            `expr:"target_arch"`
	Environ    map[string]string `expr:"environ"`
}

func NewEnv() Env {
	environ := make(map[string]string)
	for _, e := range os.Environ() {
		if key, value, ok := strings.Cut(e, "="); ok {
			environ[key] = value
		}
	}

	return Env{
		TargetOS:   runtime.GOOS,
		TargetArch: runtime.GOARCH,
		Environ:    environ,
	}
}

var placeholder = regexp.MustCompile(`\{\{(.+?)\}\}`)

// contentsKey holds inline file text. C++ brace initializers look like
// placeholders, so a string under this key is copied verbatim.
const contentsKey = "contents"

// expander substitutes {{ }} placeholders in a decoded description. Each
// distinct expression is compiled once per description.
type expander struct {
	env      Env
	programs map[string]*vm.Program
}

func newExpander(env Env) *expander {
	return &expander{env: env, programs: make(map[string]*vm.Program)}
}

// expand rewrites every string in v in place, except inline file contents.
func (e *expander) expand(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		for key, item := range val {
			if _, isText := item.(string); isText && key == contentsKey {
				continue
			}
			expanded, err := e.expand(item)
			if err != nil {
				return nil, zerr.With(err, "key", key)
			}
			val[key] = expanded
		}
		return val, nil
	case []any:
		for i, item := range val {
			expanded, err := e.expand(item)
			if err != nil {
				return nil, err
			}
			val[i] = expanded
		}
		return val, nil
	case string:
		return e.expandString(val)
	default:
		return v, nil
	}
}

func (e *expander) expandString(s string) (string, error) {
	var firstErr error
	out := placeholder.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}
		result, err := e.eval(strings.TrimSpace(match[2 : len(match)-2]))
		if err != nil {
			firstErr = err
			return match
		}
		return fmt.Sprint(result)
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func (e *expander) eval(source string) (any, error) {
	program, ok := e.programs[source]
	if !ok {
		var err error
		program, err = expr.Compile(source, expr.Env(Env{}))
		if err != nil {
			return nil, zerr.With(fmt.Errorf("%w: %w", ErrExpression, err), "expression", source)
		}
		e.programs[source] = program
	}

	result, err := expr.Run(program, e.env)
	if err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", ErrExpression, err), "expression", source)
	}
	return result, nil
}
