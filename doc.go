/*
Package espalier models finite-state machines as graphs of states and
transitions and exports them into target-language source facts.

# Concept

A machine lives on disk as a bundle: a directory named <Name>.machine holding
the generated sources of one output format. A language binding re-derives the
structural facts of the machine (transition counts, guards, targets, the
suspend state and opaque boilerplate text) from those files. Bindings are
registered in a closed registry keyed by output format ("c" for LLFSM, "cxx"
for CLFSM).

Machines that cooperate are grouped in arrangements: an ordered list of
machine names persisted as a plain text Machines manifest, or in Redis.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/espalier"
	)

	func main() {
		e, err := espalier.New("./machines")
		if err != nil {
			log.Fatal(err)
		}

		res, err := e.Export(context.Background(), "Counter", "cxx")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Machine)
	}

# Architecture

  - pkg/domain: the graph model, capabilities and error signals.
  - pkg/ports: the LanguageBinding and ArrangementStore contracts.
  - pkg/adapters: bindings (clfsm, llfsm), the bundle reader, the binding cache and arrangement stores.
  - pkg/export: the driver that turns binding answers into a machine.
*/
package espalier
