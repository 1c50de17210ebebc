// Package state provides a lightweight FSM/session manager for Telegram bots.
// Sessions live in process memory only; a restart drops any in-flight
// conversation and the user simply re-issues the command.
package state
