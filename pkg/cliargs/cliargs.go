// Package cliargs implements a small interleaved flag/positional argument
// scanner, grounded on the teacher's cmd/flag.go FlagSet wrapper but
// hand-rolled directly over a string slice rather than built on a pflag-style
// library, because spec.md §8 pins exact interleaving and "--" termination
// semantics that are simplest to satisfy with a short, explicit scanner.
package cliargs

import "fmt"

// Spec describes the flags a single command accepts.
type Spec struct {
	// Bool maps a long flag name (without leading "--") to its accepted
	// short form (without leading "-", or "" if none).
	Bool map[string]string
	// String maps a long flag name to its accepted short form for flags
	// that take a value.
	String map[string]string
}

// Result is the outcome of parsing one command's argument list.
type Result struct {
	// Bools holds the final boolean value of every flag in Spec.Bool,
	// defaulting to false.
	Bools map[string]bool
	// Strings holds the final string value of every flag in Spec.String
	// that was supplied; flags not supplied are absent from the map.
	Strings map[string]string
	// Positional holds every non-flag argument, in the order encountered,
	// including everything after a "--" terminator.
	Positional []string
}

// Parse scans arguments against spec. Flags and positional arguments may be
// interleaved freely; a literal "--" argument stops flag parsing and every
// remaining argument (including further "-"-prefixed ones) is treated as
// positional. An argument of two or more characters beginning with "-" or
// "--" that does not match a name in spec is a syntax error; a lone "-" is
// positional.
func Parse(spec Spec, arguments []string) (*Result, error) {
	longBool := make(map[string]bool, len(spec.Bool))
	shortBool := make(map[string]string, len(spec.Bool))
	for long, short := range spec.Bool {
		longBool[long] = true
		if short != "" {
			shortBool[short] = long
		}
	}
	longString := make(map[string]bool, len(spec.String))
	shortString := make(map[string]string, len(spec.String))
	for long, short := range spec.String {
		longString[long] = true
		if short != "" {
			shortString[short] = long
		}
	}

	result := &Result{
		Bools:   make(map[string]bool, len(spec.Bool)),
		Strings: make(map[string]string, len(spec.String)),
	}
	for long := range spec.Bool {
		result.Bools[long] = false
	}

	terminated := false
	for i := 0; i < len(arguments); i++ {
		arg := arguments[i]

		if terminated {
			result.Positional = append(result.Positional, arg)
			continue
		}

		if arg == "--" {
			terminated = true
			continue
		}

		if len(arg) >= 2 && arg[0] == '-' && arg[1] == '-' {
			name := arg[2:]
			if longBool[name] {
				result.Bools[name] = true
				continue
			}
			if longString[name] {
				value, next, err := takeValue(arguments, i, arg)
				if err != nil {
					return nil, err
				}
				result.Strings[name] = value
				i = next
				continue
			}
			return nil, syntaxErrorf("unknown option %q", arg)
		}

		if len(arg) >= 2 && arg[0] == '-' {
			name := arg[1:]
			if long, ok := shortBool[name]; ok {
				result.Bools[long] = true
				continue
			}
			if long, ok := shortString[name]; ok {
				value, next, err := takeValue(arguments, i, arg)
				if err != nil {
					return nil, err
				}
				result.Strings[long] = value
				i = next
				continue
			}
			return nil, syntaxErrorf("unknown option %q", arg)
		}

		result.Positional = append(result.Positional, arg)
	}

	return result, nil
}

// takeValue consumes the value for a string-valued option at arguments[i],
// returning the value and the index consumed up to.
func takeValue(arguments []string, i int, flagText string) (string, int, error) {
	if i+1 >= len(arguments) {
		return "", i, syntaxErrorf("option %q requires a value", flagText)
	}
	return arguments[i+1], i + 1, nil
}

// SyntaxError indicates invalid CLI invocation (spec.md §7 SYNTAX kind).
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func syntaxErrorf(format string, args ...interface{}) error {
	return &SyntaxError{Message: fmt.Sprintf(format, args...)}
}
