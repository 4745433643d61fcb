// Package engine implements the session item selector and scorer: the
// deterministic daily/practice item pick, multiple-choice option
// building, tolerant answer evaluation, and XP scoring.
//
// Everything in this package is a pure function of its inputs. Daily
// determinism is anchored on a day key (the calendar date in a fixed
// reference timezone) hashed through SHA-256 into a PRNG seed, so the
// same user sees the same daily set when reopening the app on the same
// day.
package engine
