// Package bootstrap runs the fixed developer bootstrap sequence.
//
// A run is four external invocations in a fixed order:
//
//  1. install the dependency manager (pip install poetry)
//  2. install the project dependencies (poetry install)
//  3. install the pre-commit hook (poetry run pre-commit install)
//  4. query the virtualenv location (poetry config virtualenvs.path)
//
// followed by the usage hints. No step is conditional and a failing step
// never stops the run: its result is recorded and the next step starts.
// Whether failures change the exit status is the caller's decision.
package bootstrap
