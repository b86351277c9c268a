// Package engine evaluates guards against batches of changed paths.
//
// The engine is stateless and synchronous: MatchFiles walks a guard's
// watchers in registration order and, for each one, the changed paths in
// input order, concatenating what every matching watcher derives. A watch
// action that fails is reported to the diagnostic sink and contributes
// nothing; the other watchers still run.
//
// MatchesRuleFile tells the caller when the Guardfile itself changed so it can
// be reloaded.
package engine
