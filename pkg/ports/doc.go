/*
Package ports defines the driven ports (interfaces) of espalier.

These interfaces decouple the export driver and the CLI from the concrete
on-disk formats and storage backends, so that a new target language or a new
manifest backend is a new adapter rather than a new code path in callers.

# Key Interfaces

  - LanguageBinding: re-derives FSM facts and boilerplate from a machine bundle
    persisted in one target language's layout.
  - ArrangementStore: loads and saves the ordered machine list of an arrangement.
*/
package ports
