// Package filters provides the string-case filters available inside anvil
// templates.
//
// Every filter takes one value, renders it through its standard string form
// (so numbers and other printable values work), and returns the converted
// text:
//
//	snakecase   ThisIsATest    → this_is_a_test
//	kebabcase   ThisIsATest    → this-is-a-test
//	camelcase   ThisIsATest    → thisIsATest
//	pascalcase  this_is_a_test → ThisIsATest
//	titlecase   ThisIsATest    → This Is A Test
//
// A plural filter (user → users) is registered next to them.
//
// # Registration
//
// pongo2 templates find filters by name once [RegisterPongo] has run:
//
//	{{ table|snakecase|plural }}
//
// text/template uses [FuncMap]:
//
//	template.New("model").Funcs(filters.FuncMap())
//
// Words are split on Unicode case changes and on anything that is not a
// letter or digit. Digits stay with the word they follow, so "Base64Encoder"
// becomes "base64_encoder". Upper and lower casing use golang.org/x/text/cases,
// so non-ASCII input converts like ASCII: "ÜberCool" becomes "über_cool".
package filters
