// Package app wires configuration, logging, the API client, the state store
// and the UI together.
//
// Setup is shared by every command: it loads config.toml, applies flag
// overrides, opens the log file and builds a plants.Client. Run then starts
// the Bubble Tea program over a fresh state.Store with the theme saved in
// prefs.toml.
//
// When refresh_every is set, StartPoller reloads the store in the background
// and sends ui.SyncedMsg so the view redraws. Failed refreshes back off
// exponentially up to five minutes; the first success resets the interval.
//
//	env, err := app.Setup("", nil)
//	if err != nil {
//		return err
//	}
//	defer env.Close()
//	return app.Run(ctx, env, app.Options{})
package app
