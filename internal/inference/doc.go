// Package inference owns the single "active model" of the service and forwards
// model operations to the runner. It is structured into small files by concern:
//
//   - service.go: Service type, constructor options, Current.
//   - load.go: Load/Unload/Delete lifecycle of the active model.
//   - generate.go: Generate entry point.
//   - list.go: ListAvailable/ListCategorized (degrade to empty on failure).
//   - category.go: Category type and the keyword heuristics of Categorize.
//   - errors.go: error types and helpers (IsNoActiveModel, IsRunnerFailure).
//   - events.go: lifecycle events and publishers.
//
// Listing degrades; load, delete and generate propagate errors to the caller.
package inference
