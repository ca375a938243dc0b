// Package anim implements the timed state machine that cycles a
// visualisation between a system view and a component view.
//
// The cycle is
//
//	SystemIdle -> ToComponent -> ComponentIdle -> ToSystem -> SystemIdle
//
// and each return to SystemIdle advances the focus to the next subject in
// the sequence. [Machine.TweenProgress] folds the whole cycle into one
// continuous scalar: 0 in the system view, 1 in the component view, eased in
// between.
//
// [BreathingScale] and [Drift] are stateless oscillators used to keep idle
// elements moving; give each subject its own phase so they desynchronise.
package anim
