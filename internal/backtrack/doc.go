// Package backtrack enumerates every subset that reaches the target by
// walking a reachability table backwards.
//
// The walk starts at (i = n, s = T). At each state the include branch
// (w[i-1] <= s and table[i-1][s-w[i-1]]) and the exclude branch
// (table[i-1][s]) are both explored whenever they hold, include first.
// Every pushed state is reachable, so the only dead ends come from the
// optional subset length cap.
//
// The walk uses an explicit stack. The accumulated indices are immutable
// linked nodes shared between branches and copied into a fresh Subset on
// emission, so no branch can observe or mutate another branch's state.
//
// A Backtracker is read-only after construction and safe for concurrent use;
// each Walk owns its own stack.
package backtrack
