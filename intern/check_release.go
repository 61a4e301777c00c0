//go:build release

package intern

const debugChecks = false
