// Package tui runs the signup form in a terminal. A Session prompts each
// field through a PromptDriver (survey by default), marks it touched once
// answered, re-prompts while its errors are surfaced, checks that both
// passwords match, and hands the state to the orchestrator.
package tui
