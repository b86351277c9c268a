// Package watcher implements guard's watch rules.
//
// A Watcher pairs a Pattern with an optional Action. The pattern decides
// whether a changed path is relevant; the action turns a relevant path into
// the derived paths a guard should act on.
//
// # Patterns
//
// Patterns are either literal strings compared for equality or regular
// expressions matched anywhere in the path:
//
//	watcher.New("spec/spec_helper.rb")                 // literal
//	watcher.New(regexp.MustCompile(`^lib/(.+)\.rb$`))  // regexp
//
// For compatibility with older Guardfiles, a string that does not look like a
// plain filename (see LooksLikeRegexp) is compiled as a regular expression
// once, when the watcher is built, and a deprecation notice is reported.
//
// # Actions
//
// Actions come in two shapes chosen when they are built: NoArg actions ignore
// the match, WithMatch actions receive it and can read capture groups. Their
// return value is normalized by Normalize: a string is one path, a []string is
// many, anything else is none. Errors and panics raised by an action are
// returned from Call as ErrActionInvocation errors so a caller can isolate
// them.
package watcher
