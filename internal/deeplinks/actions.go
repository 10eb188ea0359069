// Package deeplinks builds iOS URL-scheme strings for the built-in tool set.
// Every builder is a pure function from strings to a URL scheme; optional
// parameters are empty strings. The launcher registry binds them to the
// descriptor names used by the router.
package deeplinks

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// cfAbsoluteEpochOffset converts a Unix timestamp to CFAbsoluteTime, Apple's
// seconds since 2001-01-01 00:00:00 GMT.
const cfAbsoluteEpochOffset = 978307200

// AppleMaps builds a directions URL. transport is one of d/w/r/c and
// defaults to driving.
func AppleMaps(source, destination, transport string) string {
	if transport == "" {
		transport = "d"
	}
	return fmt.Sprintf("maps://?saddr=%s&daddr=%s&dirflg=%s",
		url.PathEscape(source), url.PathEscape(destination), url.PathEscape(transport))
}

// FaceTime initiates a FaceTime call with a phone number or Apple ID email.
func FaceTime(phoneOrEmail string) string {
	return "facetime://" + url.PathEscape(phoneOrEmail)
}

// MailTo opens a compose window with prefilled fields.
func MailTo(recipient, cc, bcc, subject, body string) string {
	q := url.Values{}
	if cc != "" {
		q.Set("cc", cc)
	}
	if bcc != "" {
		q.Set("bcc", bcc)
	}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	if len(q) > 0 {
		return "mailto:" + url.PathEscape(recipient) + "?" + q.Encode()
	}
	return "mailto:" + url.PathEscape(recipient)
}

// SettingsPane opens a specific Settings pane. App-Prefs: is private API and
// can be rejected by App Review.
func SettingsPane(root, path string) string {
	if root == "" {
		root = "WIFI"
	}
	if path != "" {
		return fmt.Sprintf("App-Prefs:root=%s&path=%s", url.PathEscape(root), url.PathEscape(path))
	}
	return "App-Prefs:root=" + url.PathEscape(root)
}

// CalendarDate opens Calendar at a YYYY-MM-DD date. The calshow scheme takes
// CFAbsoluteTime; the time is anchored to local noon so timezone/DST shifts
// cannot roll the target to an adjacent day. Unparseable input falls back to
// opening the app.
func CalendarDate(date string) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return "calshow://"
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
	return "calshow://" + strconv.FormatInt(noon.Unix()-cfAbsoluteEpochOffset, 10)
}

// GoogleMapsStreetView launches Google Maps street view centered at lat/lng
// with an optional query.
func GoogleMapsStreetView(q, centerLat, centerLng string) string {
	params := url.Values{}
	if q != "" {
		params.Set("q", q)
	}
	if centerLat != "" && centerLng != "" {
		params.Set("center", centerLat+","+centerLng)
	}
	params.Set("mapmode", "streetview")
	return "comgooglemaps://?" + params.Encode()
}

// SpotifySearch opens Spotify search results for the query.
func SpotifySearch(query string) string {
	return "spotify:search:" + url.PathEscape(query)
}

// ThingsAdd adds a new to-do in Things 3. when/deadline accept relative
// words like "today" or absolute dates; tags is comma-separated.
func ThingsAdd(title, notes, when, deadline, tags, listName string) string {
	params := url.Values{}
	params.Set("title", title)
	if notes != "" {
		params.Set("notes", notes)
	}
	if when != "" {
		params.Set("when", when)
	}
	if deadline != "" {
		params.Set("deadline", deadline)
	}
	if tags != "" {
		params.Set("tags", tags)
	}
	if listName != "" {
		params.Set("list", listName)
	}
	return "things:///add?" + params.Encode()
}

// WhatsAppSend opens a WhatsApp chat with optional prefilled text.
func WhatsAppSend(phone, text string) string {
	params := url.Values{}
	params.Set("phone", phone)
	if text != "" {
		params.Set("text", text)
	}
	return "whatsapp://send?" + params.Encode()
}

// UberSetPickup prepares an Uber ride with pickup/dropoff coordinates and an
// optional product ID.
func UberSetPickup(pickupLat, pickupLng, pickupNickname, dropoffLat, dropoffLng, dropoffNickname, productID string) string {
	params := url.Values{}
	params.Set("action", "setPickup")
	params.Set("pickup[latitude]", pickupLat)
	params.Set("pickup[longitude]", pickupLng)
	if pickupNickname != "" {
		params.Set("pickup[nickname]", pickupNickname)
	}
	if dropoffLat != "" && dropoffLng != "" {
		params.Set("dropoff[latitude]", dropoffLat)
		params.Set("dropoff[longitude]", dropoffLng)
	}
	if dropoffNickname != "" {
		params.Set("dropoff[nickname]", dropoffNickname)
	}
	if productID != "" {
		params.Set("product_id", productID)
	}
	return "uber://?" + params.Encode()
}

// PhoneCall starts a phone call with the tel: scheme.
func PhoneCall(phone string) string {
	return "tel:" + url.PathEscape(phone)
}

// SMS opens Messages to a number with an optional body. Body support varies
// across iOS versions.
func SMS(phone, body string) string {
	if body != "" {
		return "sms:" + url.PathEscape(phone) + "&body=" + url.PathEscape(body)
	}
	return "sms:" + url.PathEscape(phone)
}

// AppStore opens the App Store from a full itms/itms-apps URL.
func AppStore(storeURL string) string {
	return storeURL
}

// Shortcuts opens the Shortcuts app, or runs a shortcut by name.
func Shortcuts(name string) string {
	if name != "" {
		return "shortcuts://run-shortcut?name=" + url.PathEscape(name)
	}
	return "shortcuts://"
}

// Notes opens Apple Notes (undocumented scheme).
func Notes() string { return "mobilenotes://" }

// Reminders opens Apple Reminders (undocumented scheme).
func Reminders() string { return "x-apple-reminderkit://" }

// Photos opens Apple Photos (undocumented scheme).
func Photos() string { return "photos-redirect://" }

// Books opens Apple Books.
func Books() string { return "ibooks://" }

// Podcasts opens Apple Podcasts, optionally adding/previewing a feed.
func Podcasts(feed string) string {
	if feed != "" {
		return "podcast://" + url.PathEscape(feed)
	}
	return "podcast://"
}

// Music opens Apple Music.
func Music() string { return "music://" }

// Wallet opens Apple Wallet.
func Wallet() string { return "shoebox://" }

// FindMy opens Find My, optionally at a tab like items, people or devices.
func FindMy(tab string) string {
	if tab != "" {
		return "findmy://" + url.PathEscape(tab)
	}
	return "findmy://"
}
