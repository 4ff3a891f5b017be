/*
Package domain contains the core model of an espalier machine.

It defines the graph of a finite-state machine (States, Transitions and the
Machine aggregate), the capability interfaces a machine exposes (FSM and
Suspensible), the opaque Boilerplate fragments produced by language bindings,
and the closed set of errors surfaced when an export cannot proceed.

The package is kept free of I/O. Anything that reads a machine from disk lives
behind the ports.LanguageBinding interface.

# Key Entities

  - State: a named unit of behaviour, addressed by its StateID (position).
  - StateRef: an optional StateID, used wherever a reference may not resolve.
  - Transition: a directed edge with a guard expression and an optional target.
  - Machine / SuspensibleMachine: the ordered aggregate of states and transitions.
  - Boilerplate: backend-specific text sections for a machine or a state.
*/
package domain
