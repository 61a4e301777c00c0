//go:build !release

package intern

// debugChecks enables the consistency assertions of InternExtra and create.
// Build with -tags release to compile them out.
const debugChecks = true
