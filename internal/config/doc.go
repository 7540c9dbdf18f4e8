// Package config loads plantbuddy's TOML configuration.
//
// The file lives at ~/.config/plantbuddy/config.toml unless a path is given.
// A missing file is not an error; every key has a default:
//
//	api_url = "http://127.0.0.1:8000"
//	auth_header = "X-Telegram-InitData"
//	token = ""
//	refresh_every = "0s"      # auto-refresh interval, 0 disables it
//	request_timeout = "10s"
//	log_file = "~/.local/state/plantbuddy/plantbuddy.log"
//	log_level = "info"
//
// Blank values fall back to the defaults and paths get tilde expansion.
// PLANTBUDDY_TOKEN, when set, replaces the token from the file so it does not
// have to be stored on disk.
package config
