/*
Package dsl provides a fluent builder for constructing machines in memory.

It is the programmatic counterpart of a machine bundle: useful for tests,
for generating machines from other tools and for previewing graphs without
touching the filesystem.

Example usage:

	m, err := dsl.New("Counter").
		State("Initial").Go("CountUp").
		State("CountUp").Branch("count >= 10", "Print").
		State("Print").
		State("SUSPENDED").
		Suspend("SUSPENDED").
		Build()

States keep their declaration order, so the first declared state is the
initial state. Targets are resolved when Build is called; a target naming no
declared state becomes domain.NoState().
*/
package dsl
