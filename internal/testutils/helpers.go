// Package testutils builds machine bundles on disk for tests.
package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Transition is a fixture transition: guard text and target state index.
type Transition struct {
	Expr   string
	Target int
}

// MachineSpec describes a fixture machine.
type MachineSpec struct {
	Name        string
	States      []string
	Transitions map[string][]Transition
	Suspend     int // index into States, -1 when not suspensible
	Extra       map[string]string
}

// WriteBundle creates dir/<name>.machine with the given files and returns its path.
// It fails the test immediately on error.
func WriteBundle(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()

	location := filepath.Join(dir, name+".machine")
	require.NoError(t, os.MkdirAll(location, 0755), "Failed to create bundle dir")

	for file, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(location, file), []byte(content), 0644), "Failed to write %s", file)
	}
	return location
}

// commonFiles returns the States list and the guard files shared by every layout.
func commonFiles(spec MachineSpec) map[string]string {
	files := map[string]string{
		"States": strings.Join(spec.States, "\n") + "\n",
	}
	for state, ts := range spec.Transitions {
		for i, tr := range ts {
			files[fmt.Sprintf("State_%s_Transition_%d.expr", state, i)] = tr.Expr + "\n"
		}
	}
	for k, v := range spec.Extra {
		files[k] = v
	}
	return files
}

// WriteCXXBundle writes a bundle in the CLFSM (C++) layout.
func WriteCXXBundle(t *testing.T, dir string, spec MachineSpec) string {
	t.Helper()

	files := commonFiles(spec)
	files[spec.Name+".h"] = cxxMachineHeader(spec)
	for _, state := range spec.States {
		files["State_"+state+".h"] = cxxStateHeader(spec.Name, state, spec.Transitions[state])
	}
	if spec.Suspend >= 0 && spec.Suspend < len(spec.States) {
		files["SuspendState"] = spec.States[spec.Suspend] + "\n"
	}
	return WriteBundle(t, dir, spec.Name, files)
}

// WriteCBundle writes a bundle in the LLFSM (C) layout.
func WriteCBundle(t *testing.T, dir string, spec MachineSpec) string {
	t.Helper()

	files := commonFiles(spec)
	files["Machine_"+spec.Name+".c"] = cMachineSource(spec)
	for _, state := range spec.States {
		files["State_"+state+".c"] = cStateSource(spec.Name, state, spec.Transitions[state])
	}
	return WriteBundle(t, dir, spec.Name, files)
}

func cxxMachineHeader(spec MachineSpec) string {
	return fmt.Sprintf(`//
// %[1]s.h
//
// Automatically created through MiCASE -- do not change manually!
//
#ifndef clfsm_machine_%[1]s_
#define clfsm_machine_%[1]s_

#include "CLMachine.h"

namespace FSM
{
    class CLState;

    namespace CLM
    {
        class %[1]s: public CLMachine
        {
            CLState *_states[%[2]d];
        public:
            %[1]s(int mid  = 0, const char *name = "%[1]s");
            virtual ~%[1]s();
            virtual CLState * const * states() const { return _states; }
            virtual int numberOfStates() const { return %[2]d; }
#           include "%[1]s_Variables.h"
#           include "%[1]s_Methods.h"
        };
    }
}

#endif // defined(clfsm_machine_%[1]s_)
`, spec.Name, len(spec.States))
}

func cxxStateHeader(machine, state string, ts []Transition) string {
	var classes strings.Builder
	for i, tr := range ts {
		fmt.Fprintf(&classes, `
                class Transition_%d: public CLTransition
                {
                public:
                    Transition_%d(int toState = %d): CLTransition(toState) {}

                    virtual bool check(CLMachine *, CLState *) const;
                };
`, i, i, tr.Target)
	}

	return fmt.Sprintf(`//
// State_%[2]s.h
//
// Automatically created through MiCASE -- do not change manually!
//
#ifndef clfsm_%[1]s_State_%[2]s_h
#define clfsm_%[1]s_State_%[2]s_h

#include "CLState.h"
#include "CLAction.h"
#include "CLTransition.h"

namespace FSM
{
    namespace CLM
    {
      namespace FSM%[1]s
      {
        namespace State
        {
            class %[2]s: public CLState
            {
                class OnEntry: public CLAction
                {
                    virtual void perform(CLMachine *, CLState *) const;
                };
%[3]s
                CLTransition *_transitions[%[4]d];

                public:
                    %[2]s(const char *name = "%[2]s");
                    virtual ~%[2]s();

                    virtual CLTransition * const *transitions() const { return _transitions; }
                    virtual int numberOfTransitions() const { return %[4]d; }

#                   include "State_%[2]s_Variables.h"
#                   include "State_%[2]s_Methods.h"
            };
        }
      }
    }
}

#endif
`, machine, state, classes.String(), len(ts))
}

func cMachineSource(spec MachineSpec) string {
	suspend := "NULL"
	if spec.Suspend >= 0 {
		suspend = fmt.Sprintf("machine->states[%d]", spec.Suspend)
	}
	return fmt.Sprintf(`//
// Machine_%[1]s.c
//
// Automatically created using fsmconvert -- do not change manually!
//
#include "Machine_%[1]s.h"

#ifndef NULL
#define NULL ((void*)0)
#endif

void fsm_%[2]s_init(struct Machine_%[1]s * const machine)
{
    machine->current_state = machine->states[0];
    machine->previous_state = NULL;
    machine->state_time = 0;
    machine->suspend_state = %[3]s;
    machine->resume_state = NULL;
}
`, spec.Name, strings.ToLower(spec.Name), suspend)
}

func cStateSource(machine, state string, ts []Transition) string {
	var checks strings.Builder
	for i, tr := range ts {
		fmt.Fprintf(&checks, `    if (
        #include "State_%s_Transition_%d.expr"
    ) return machine->states[%d];
`, state, i, tr.Target)
	}

	lower := strings.ToLower(machine)
	return fmt.Sprintf(`//
// State_%[2]s.c
//
// Automatically created using fsmconvert -- do not change manually!
//
#include "Machine_%[1]s.h"
#include "State_%[2]s.h"

void fsm_%[3]s_%[4]s_on_entry(struct Machine_%[1]s * const machine, struct FSM%[1]s_State_%[2]s * const state)
{
#   include "State_%[2]s_OnEntry.mm"
}

struct LLFSMState *fsm_%[3]s_%[4]s_check_transitions(const struct Machine_%[1]s * const machine, const struct FSM%[1]s_State_%[2]s * const state)
{
%[5]s    return NULL; // None of the transitions fired.
}
`, machine, state, lower, strings.ToLower(state), checks.String())
}

// CounterSpec mirrors the CounterC example machine: Initial -> CountUp -> Print,
// suspensible through SUSPENDED.
func CounterSpec(name string) MachineSpec {
	return MachineSpec{
		Name:   name,
		States: []string{"Initial", "InitialPseudoState", "CountUp", "Print", "SUSPENDED"},
		Transitions: map[string][]Transition{
			"Initial": {{Expr: "true", Target: 2}},
			"CountUp": {{Expr: "count >= 10", Target: 3}, {Expr: "after(5)", Target: 9}},
		},
		Suspend: 4,
		Extra: map[string]string{
			"State_CountUp_OnEntry.mm":   "count++;\n",
			"State_CountUp_Variables.h":  "int count;\n",
			"State_Print_OnEntry.mm":     "printf(\"%d\\n\", count);\n",
			"State_Initial_Includes.h":   "#include <stdio.h>\n",
			"State_Print_Includes.h":     "#include <stdio.h>\n",
			"State_CountUp_Internal.mm":  "",
			"State_SUSPENDED_OnEntry.mm": "",
		},
	}
}

// ScenarioSpec is the two-state machine S0 -g-> S1 without a suspend state.
func ScenarioSpec(name string) MachineSpec {
	return MachineSpec{
		Name:   name,
		States: []string{"S0", "S1"},
		Transitions: map[string][]Transition{
			"S0": {{Expr: "g", Target: 1}},
		},
		Suspend: -1,
	}
}
