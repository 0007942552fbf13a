// Package dispatcher runs named editing commands.
//
// The input handler turns keys into actions; the dispatcher looks the
// action name up in its command registry, builds an ExecutionContext with
// the session buffer and collaborators, runs the handler and applies the
// result's side effects:
//
//  1. Pre-dispatch hooks run and may cancel the action.
//  2. The registry resolves the command name to a handler.
//  3. The handler runs, with panic recovery when configured.
//  4. The result is processed: scope change, bell, redisplay.
//  5. Post-dispatch hooks run and metrics are recorded.
//
// Suppressed command names (completion and history search) can never be
// registered, so no key can reach them.
package dispatcher
