package filters

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Func is a single-argument template filter. The error is always nil for the
// case filters; it exists so every filter shares the engine calling convention.
type Func func(v any) (string, error)

// Snakecase converts a value to snake_case.
// Examples: ThisIsATest → this_is_a_test, Base64Encoder → base64_encoder
func Snakecase(v any) (string, error) {
	return strings.Join(lowered(v), "_"), nil
}

// Kebabcase converts a value to kebab-case.
// Examples: ThisIsATest → this-is-a-test, HELLO_WORLD → hello-world
func Kebabcase(v any) (string, error) {
	return strings.Join(lowered(v), "-"), nil
}

// Camelcase converts a value to lowerCamelCase.
// Examples: ThisIsATest → thisIsATest, hello_world → helloWorld
func Camelcase(v any) (string, error) {
	parts := titled(v)
	if len(parts) > 0 {
		parts[0] = cases.Lower(language.Und).String(parts[0])
	}
	return strings.Join(parts, ""), nil
}

// Pascalcase converts a value to PascalCase.
// Examples: this_is_a_test → ThisIsATest, hello world → HelloWorld
func Pascalcase(v any) (string, error) {
	return strings.Join(titled(v), ""), nil
}

// Titlecase converts a value to Title Case, one space between words.
// Examples: ThisIsATest → This Is A Test, hello-world → Hello World
func Titlecase(v any) (string, error) {
	return strings.Join(titled(v), " "), nil
}

// display renders any value through its standard string form.
func display(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func lowered(v any) []string {
	parts := words(display(v))
	// Casers carry state, so each call gets its own.
	lower := cases.Lower(language.Und)
	for i, p := range parts {
		parts[i] = lower.String(p)
	}
	return parts
}

func titled(v any) []string {
	parts := words(display(v))
	title := cases.Title(language.Und)
	for i, p := range parts {
		parts[i] = title.String(p)
	}
	return parts
}

// wordMode is the casing seen so far in the current word.
type wordMode int

const (
	atBoundary wordMode = iota
	inLower
	inUpper
)

// words splits s into words. Anything that is neither a letter nor a digit
// separates words. Inside a run, a word ends before an upper case letter
// that follows a lower case one (userName → user Name), and before the
// last capital of an acronym (HTTPServer → HTTP Server). Digits never start
// a word of their own: Base64Encoder → Base64 Encoder.
func words(s string) []string {
	var out []string
	runs := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	for _, run := range runs {
		rs := []rune(run)
		start, mode := 0, atBoundary
		for i := 0; i < len(rs)-1; i++ {
			c, next := rs[i], rs[i+1]

			// Digits and uncased letters keep the current mode
			nextMode := mode
			if unicode.IsLower(c) {
				nextMode = inLower
			} else if unicode.IsUpper(c) {
				nextMode = inUpper
			}

			switch {
			case nextMode == inLower && unicode.IsUpper(next):
				out = append(out, string(rs[start:i+1]))
				start, mode = i+1, atBoundary
			case mode == inUpper && unicode.IsUpper(c) && unicode.IsLower(next):
				out = append(out, string(rs[start:i]))
				start, mode = i, atBoundary
			default:
				mode = nextMode
			}
		}
		out = append(out, string(rs[start:]))
	}
	return out
}
