// Package guardfile loads Guardfiles: the TOML or YAML files declaring the
// guards of a project and their watch rules.
//
// # Format
//
//	[[guard]]
//	name = "rspec"
//	group = "specs"
//	run = ["bundle", "exec", "rspec"]
//
//	  [[guard.watch]]
//	  pattern = '^spec/.+_spec\.rb$'
//
//	  [[guard.watch]]
//	  pattern = 'lib/(.+)\.rb'
//	  regexp = true
//	  action = "spec/{1}_spec.rb"
//
//	  [[guard.watch]]
//	  pattern = "spec/spec_helper.rb"
//	  paths = ["spec"]
//
//	  [[guard.watch]]
//	  pattern = "Gemfile.lock"
//	  command = ["git", "ls-files", "spec"]
//
// A pattern is a literal unless `regexp = true` or it looks like a regular
// expression (the latter is deprecated and reported). Each watch entry takes
// at most one of `action` (a template where {N} and {name} expand capture
// groups), `paths` (a fixed list) or `command` (stdout lines of a command).
// Without any of them the changed path itself is derived.
package guardfile
