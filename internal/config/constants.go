// Package config holds ambient constants and the optional on-disk
// configuration layer for hosts embedding the core (principally
// cmd/playground).
package config

// DefaultLineWidth is the target line width the pretty-printer wraps to
// when the caller does not supply one.
const DefaultLineWidth = 80

// DefaultMaxSteps bounds how many one-step reductions a driver loop takes
// before giving up on a non-terminating program; the evaluator itself
// never imposes a budget, callers do.
const DefaultMaxSteps = 100000

// DefaultValuePrefix and DefaultClosurePrefix are the fresh-name prefixes
// the evaluator mints heap cells under. The leading '%' is reserved for
// evaluator-generated names so they can never collide with a name that
// appeared in source.
const (
	DefaultValuePrefix   = "%x"
	DefaultClosurePrefix = "%f"
)

// IncludeApplicationsInTypeMap records the default for whether the
// checker's span->Type output map also carries an entry for Application
// nodes. Nothing reads this variable: the checker takes the setting from
// checker.Options.IncludeApplications, and the CLI fills that from the
// includeApplicationTypes field of playground.yaml (File.IncludeApplyTypes).
var IncludeApplicationsInTypeMap = false
