package textstage

import (
	"context"
	"slices"
	"strings"

	"github.com/kbukum/onion/pipeline"
	"github.com/kbukum/onion/validation"
)

const tagPattern = `^[a-zA-Z][a-zA-Z0-9-]*$`

func registerBuiltins(r *Registry) {
	r.Register("trim", noArg("trim", strings.TrimSpace))
	r.Register("upper", noArg("upper", strings.ToUpper))
	r.Register("lower", noArg("lower", strings.ToLower))
	r.Register("reverse", noArg("reverse", reverse))
	r.Register("skip-empty", skipEmpty)
	r.Register("prefix", affix("prefix", func(s, arg string) string { return arg + s }))
	r.Register("suffix", affix("suffix", func(s, arg string) string { return s + arg }))
	r.Register("replace", replace)
	r.Register("wrap", wrap)
}

// mapIn rewrites the text on its way in.
func mapIn(fn func(string) string) Stage {
	return func(ctx context.Context, in string, next pipeline.Handler[string, string]) (string, error) {
		return next(ctx, fn(in))
	}
}

// affix arguments are taken verbatim; whitespace is significant.
func affix(name string, join func(s, arg string) string) Factory {
	return func(arg string) (Stage, error) {
		if err := validation.New().Custom(arg != "", name, "is required").Validate(); err != nil {
			return nil, err
		}
		return mapIn(func(s string) string { return join(s, arg) }), nil
	}
}

func rejectArg(name, arg string) error {
	if appErr := validation.New().Custom(arg == "", name, "takes no argument").Validate(); appErr != nil {
		return appErr
	}
	return nil
}

func noArg(name string, fn func(string) string) Factory {
	return func(arg string) (Stage, error) {
		if err := rejectArg(name, arg); err != nil {
			return nil, err
		}
		return mapIn(fn), nil
	}
}

func reverse(s string) string {
	r := []rune(s)
	slices.Reverse(r)
	return string(r)
}

// skipEmpty returns blank input as the empty result without running the
// rest of the chain.
func skipEmpty(arg string) (Stage, error) {
	if err := rejectArg("skip-empty", arg); err != nil {
		return nil, err
	}
	return func(ctx context.Context, in string, next pipeline.Handler[string, string]) (string, error) {
		if strings.TrimSpace(in) == "" {
			return "", nil
		}
		return next(ctx, in)
	}, nil
}

// replace:<old>=<new> replaces every occurrence of old. new may be empty.
func replace(arg string) (Stage, error) {
	old, repl, found := strings.Cut(arg, "=")
	v := validation.New().
		Custom(old != "", "replace.old", "is required").
		Custom(found, "replace", "argument must be <old>=<new>")
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return mapIn(func(s string) string { return strings.ReplaceAll(s, old, repl) }), nil
}

// wrap:<tag> wraps the result of the rest of the chain in <tag>...</tag>.
// It acts on the way out, so stages after it see the bare text.
func wrap(arg string) (Stage, error) {
	v := validation.New().
		Required("wrap", arg).
		Pattern("wrap", arg, tagPattern)
	if err := v.Validate(); err != nil {
		return nil, err
	}
	open, closing := "<"+arg+">", "</"+arg+">"
	return func(ctx context.Context, in string, next pipeline.Handler[string, string]) (string, error) {
		out, err := next(ctx, in)
		if err != nil {
			return out, err
		}
		return open + out + closing, nil
	}, nil
}
