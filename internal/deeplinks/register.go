package deeplinks

import (
	"fmt"

	"github.com/kiosk404/portkey/internal/launcher"
)

// Module is the binding module name all deep-link handlers register under.
const Module = "deeplinks"

// at returns the i-th positional argument or "" when absent, so optional
// trailing parameters can simply be omitted from argv.
func at(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// need checks that argv carries at least n arguments.
func need(args []string, n int, function string) error {
	if len(args) < n {
		return fmt.Errorf("%s requires at least %d argument(s), got %d", function, n, len(args))
	}
	return nil
}

// Register installs every deep-link handler into the registry. Called once
// at startup; the declared Params lists are the static parameter-order
// contract the sequencer relies on.
func Register(reg *launcher.Registry) {
	handlers := []*launcher.Handler{
		{
			Module: Module, Function: "open_apple_maps",
			Params: []string{"source", "destination", "transport"},
			Build: func(args []string) (string, error) {
				if err := need(args, 2, "open_apple_maps"); err != nil {
					return "", err
				}
				return AppleMaps(at(args, 0), at(args, 1), at(args, 2)), nil
			},
		},
		{
			Module: Module, Function: "open_facetime",
			Params: []string{"phone_or_email"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_facetime"); err != nil {
					return "", err
				}
				return FaceTime(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_mailto",
			Params: []string{"recipient", "cc", "bcc", "subject", "body"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_mailto"); err != nil {
					return "", err
				}
				return MailTo(at(args, 0), at(args, 1), at(args, 2), at(args, 3), at(args, 4)), nil
			},
		},
		{
			Module: Module, Function: "open_settings_pane",
			Params: []string{"root", "path"},
			Build: func(args []string) (string, error) {
				return SettingsPane(at(args, 0), at(args, 1)), nil
			},
		},
		{
			Module: Module, Function: "open_calendar_date",
			Params: []string{"date_yyyy_mm_dd"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_calendar_date"); err != nil {
					return "", err
				}
				return CalendarDate(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_google_maps_streetview",
			Params: []string{"q", "center_lat", "center_lng"},
			Build: func(args []string) (string, error) {
				return GoogleMapsStreetView(at(args, 0), at(args, 1), at(args, 2)), nil
			},
		},
		{
			Module: Module, Function: "open_spotify_search",
			Params: []string{"query"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_spotify_search"); err != nil {
					return "", err
				}
				return SpotifySearch(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_things_add",
			Params: []string{"title", "notes", "when", "deadline", "tags", "list_name"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_things_add"); err != nil {
					return "", err
				}
				return ThingsAdd(at(args, 0), at(args, 1), at(args, 2), at(args, 3), at(args, 4), at(args, 5)), nil
			},
		},
		{
			Module: Module, Function: "open_whatsapp_send",
			Params: []string{"phone", "text"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_whatsapp_send"); err != nil {
					return "", err
				}
				return WhatsAppSend(at(args, 0), at(args, 1)), nil
			},
		},
		{
			Module: Module, Function: "open_uber_setpickup",
			Params: []string{"pickup_lat", "pickup_lng", "pickup_nickname", "dropoff_lat", "dropoff_lng", "dropoff_nickname", "product_id"},
			Build: func(args []string) (string, error) {
				if err := need(args, 2, "open_uber_setpickup"); err != nil {
					return "", err
				}
				return UberSetPickup(at(args, 0), at(args, 1), at(args, 2), at(args, 3), at(args, 4), at(args, 5), at(args, 6)), nil
			},
		},
		{
			Module: Module, Function: "open_phone_call",
			Params: []string{"phone"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_phone_call"); err != nil {
					return "", err
				}
				return PhoneCall(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_sms",
			Params: []string{"phone", "body"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_sms"); err != nil {
					return "", err
				}
				return SMS(at(args, 0), at(args, 1)), nil
			},
		},
		{
			Module: Module, Function: "open_app_store",
			Params: []string{"url"},
			Build: func(args []string) (string, error) {
				if err := need(args, 1, "open_app_store"); err != nil {
					return "", err
				}
				return AppStore(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_shortcuts",
			Params: []string{"name"},
			Build: func(args []string) (string, error) {
				return Shortcuts(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_notes", Params: nil,
			Build: func([]string) (string, error) { return Notes(), nil },
		},
		{
			Module: Module, Function: "open_reminders", Params: nil,
			Build: func([]string) (string, error) { return Reminders(), nil },
		},
		{
			Module: Module, Function: "open_photos", Params: nil,
			Build: func([]string) (string, error) { return Photos(), nil },
		},
		{
			Module: Module, Function: "open_books", Params: nil,
			Build: func([]string) (string, error) { return Books(), nil },
		},
		{
			Module: Module, Function: "open_podcasts",
			Params: []string{"feed"},
			Build: func(args []string) (string, error) {
				return Podcasts(at(args, 0)), nil
			},
		},
		{
			Module: Module, Function: "open_music", Params: nil,
			Build: func([]string) (string, error) { return Music(), nil },
		},
		{
			Module: Module, Function: "open_wallet", Params: nil,
			Build: func([]string) (string, error) { return Wallet(), nil },
		},
		{
			Module: Module, Function: "open_findmy",
			Params: []string{"tab"},
			Build: func(args []string) (string, error) {
				return FindMy(at(args, 0)), nil
			},
		},
	}

	for _, h := range handlers {
		reg.MustRegister(h)
	}
}
