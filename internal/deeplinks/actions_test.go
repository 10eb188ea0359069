package deeplinks

import (
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleMaps(t *testing.T) {
	assert.Equal(t, "maps://?saddr=SF&daddr=LA&dirflg=w", AppleMaps("SF", "LA", "w"))
	assert.Equal(t, "maps://?saddr=San%20Francisco&daddr=Los%20Angeles&dirflg=d",
		AppleMaps("San Francisco", "Los Angeles", ""))
}

func TestFaceTime(t *testing.T) {
	assert.Equal(t, "facetime://mom@example.com", FaceTime("mom@example.com"))
	assert.Equal(t, "facetime://+14155550100", FaceTime("+14155550100"))
}

func TestMailTo(t *testing.T) {
	assert.Equal(t, "mailto:bob@corp.com", MailTo("bob@corp.com", "", "", "", ""))

	full := MailTo("bob@corp.com", "cc@corp.com", "", "Standup", "Running late")
	assert.True(t, strings.HasPrefix(full, "mailto:bob@corp.com?"))
	q, err := url.ParseQuery(strings.TrimPrefix(full, "mailto:bob@corp.com?"))
	require.NoError(t, err)
	assert.Equal(t, "cc@corp.com", q.Get("cc"))
	assert.Equal(t, "Standup", q.Get("subject"))
	assert.Equal(t, "Running late", q.Get("body"))
	assert.Empty(t, q.Get("bcc"))
}

func TestSettingsPane(t *testing.T) {
	assert.Equal(t, "App-Prefs:root=Bluetooth", SettingsPane("Bluetooth", ""))
	assert.Equal(t, "App-Prefs:root=WIFI", SettingsPane("", ""))
	assert.Equal(t, "App-Prefs:root=WIFI&path=networks", SettingsPane("WIFI", "networks"))
}

func TestCalendarDate(t *testing.T) {
	got := CalendarDate("2026-03-15")
	require.True(t, strings.HasPrefix(got, "calshow://"))

	secs, err := strconv.ParseInt(strings.TrimPrefix(got, "calshow://"), 10, 64)
	require.NoError(t, err)

	// Anchored to local noon so the date survives timezone shifts.
	noon := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	assert.Equal(t, noon.Unix()-cfAbsoluteEpochOffset, secs)
}

func TestCalendarDate_Unparseable(t *testing.T) {
	assert.Equal(t, "calshow://", CalendarDate("next tuesday"))
}

func TestGoogleMapsStreetView(t *testing.T) {
	got := GoogleMapsStreetView("", "37.8199", "-122.4783")
	require.True(t, strings.HasPrefix(got, "comgooglemaps://?"))
	q, err := url.ParseQuery(strings.TrimPrefix(got, "comgooglemaps://?"))
	require.NoError(t, err)
	assert.Equal(t, "37.8199,-122.4783", q.Get("center"))
	assert.Equal(t, "streetview", q.Get("mapmode"))
}

func TestSpotifySearch(t *testing.T) {
	assert.Equal(t, "spotify:search:daft%20punk", SpotifySearch("daft punk"))
}

func TestThingsAdd(t *testing.T) {
	got := ThingsAdd("buy milk", "", "today", "", "errands,home", "")
	require.True(t, strings.HasPrefix(got, "things:///add?"))
	q, err := url.ParseQuery(strings.TrimPrefix(got, "things:///add?"))
	require.NoError(t, err)
	assert.Equal(t, "buy milk", q.Get("title"))
	assert.Equal(t, "today", q.Get("when"))
	assert.Equal(t, "errands,home", q.Get("tags"))
	assert.Empty(t, q.Get("notes"))
}

func TestWhatsAppSend(t *testing.T) {
	got := WhatsAppSend("+491701234567", "on my way")
	q, err := url.ParseQuery(strings.TrimPrefix(got, "whatsapp://send?"))
	require.NoError(t, err)
	assert.Equal(t, "+491701234567", q.Get("phone"))
	assert.Equal(t, "on my way", q.Get("text"))
}

func TestUberSetPickup(t *testing.T) {
	got := UberSetPickup("37.7749", "-122.4194", "Home", "37.6213", "-122.3790", "SFO", "")
	q, err := url.ParseQuery(strings.TrimPrefix(got, "uber://?"))
	require.NoError(t, err)
	assert.Equal(t, "setPickup", q.Get("action"))
	assert.Equal(t, "37.7749", q.Get("pickup[latitude]"))
	assert.Equal(t, "SFO", q.Get("dropoff[nickname]"))
	assert.Empty(t, q.Get("product_id"))

	// A dangling dropoff latitude without a longitude is dropped whole.
	got = UberSetPickup("1.0", "2.0", "", "3.0", "", "", "")
	q, err = url.ParseQuery(strings.TrimPrefix(got, "uber://?"))
	require.NoError(t, err)
	assert.Empty(t, q.Get("dropoff[latitude]"))
}

func TestPhoneAndSMS(t *testing.T) {
	assert.Equal(t, "tel:+14155550100", PhoneCall("+14155550100"))
	assert.Equal(t, "sms:+14155550100", SMS("+14155550100", ""))
	assert.Equal(t, "sms:+14155550100&body=hi%20there", SMS("+14155550100", "hi there"))
}

func TestSimpleOpeners(t *testing.T) {
	assert.Equal(t, "mobilenotes://", Notes())
	assert.Equal(t, "x-apple-reminderkit://", Reminders())
	assert.Equal(t, "photos-redirect://", Photos())
	assert.Equal(t, "ibooks://", Books())
	assert.Equal(t, "music://", Music())
	assert.Equal(t, "shoebox://", Wallet())
	assert.Equal(t, "podcast://", Podcasts(""))
	assert.Equal(t, "findmy://items", FindMy("items"))
	assert.Equal(t, "shortcuts://run-shortcut?name=Morning", Shortcuts("Morning"))
	assert.Equal(t, "shortcuts://", Shortcuts(""))
}
