// Package plants provides an HTTP client for the plant watering API.
//
// # Endpoints
//
//   - GET /api/today: plants with their watering status for today
//   - POST /api/water: mark a batch of plants watered, body {"plant_ids": [...]}
//
// Requests carry the user's token in the configured auth header
// (X-Telegram-InitData by default).
//
// # Decoding
//
// The today list is decoded leniently. A missing, null or non-list "items"
// field, or a body that is not JSON at all, yields an empty list rather than
// an error. Unrecognised status strings become StatusUnknown.
//
// # Errors
//
// Every failure is a *RequestError. Its message is taken from the response
// body when the server provides one ("detail", then "message"), otherwise it
// is "HTTP <status>". Use Message to get display text for any error; it
// never returns an empty string for a non-nil error.
//
//	items, err := client.FetchToday(ctx)
//	if err != nil {
//		fmt.Println(plants.Message(err))
//	}
//
// # Thread Safety
//
// Client is safe for concurrent use.
package plants
