// Package engine contains the world simulation logic for GeoMonedas.
//
// ARCHITECTURAL RULE: all state transitions (player moves, coin
// collect/deposit, save/load/reset) run to completion one at a time
// under the Engine's lock. Subsystems emit GameEvents to the EventLog;
// the presentation surface is only notified through the Presenter
// interface, never mutated directly.
package engine
