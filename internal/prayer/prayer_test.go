package prayer

import (
	"testing"
	"time"
)

// helper to build a time.Time on a given date in UTC.
func makeTime(t *testing.T, hour, min int) time.Time {
	t.Helper()
	return time.Date(2026, 2, 28, hour, min, 0, 0, time.UTC)
}

// sampleDay is a hand-built schedule for 2026-02-28.
func sampleDay() Day {
	hours := []float64{5 + 17.0/60, 6 + 48.0/60, 12 + 13.0/60, 15 + 2.0/60, 17 + 39.0/60, 17 + 39.0/60, 19 + 10.0/60}
	d := Day{Date: time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)}
	for i, h := range hours {
		s, _ := FormatHours(h, Hour24)
		d.Times = append(d.Times, Time{Event: Event(i), Hours: h, Formatted: s})
	}
	return d
}

func samplePrayers(t *testing.T) []Prayer {
	t.Helper()
	prayers, err := sampleDay().Prayers(DefaultPrayerNames, time.UTC)
	if err != nil {
		t.Fatalf("Prayers() unexpected error: %v", err)
	}
	return prayers
}

// ---------------------------------------------------------------------------
// Event
// ---------------------------------------------------------------------------

func TestParseEvent(t *testing.T) {
	tests := []struct {
		in      string
		want    Event
		wantErr bool
	}{
		{"Fajr", Fajr, false},
		{"fajr", Fajr, false},
		{" ISHA ", Isha, false},
		{"Zuhr", Dhuhr, false},
		{"dhuhr", Dhuhr, false},
		{"Sunset", Sunset, false},
		{"Tahajjud", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEvent(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseEvent(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseEvent(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestEvents_Order(t *testing.T) {
	events := Events()
	if len(events) != 7 {
		t.Fatalf("Events() returned %d events, want 7", len(events))
	}
	for i, e := range events {
		if e.String() != AllPrayerNames[i] {
			t.Errorf("Events()[%d] = %s, want %s", i, e, AllPrayerNames[i])
		}
	}
	if got := Event(42).String(); got != "Event(42)" {
		t.Errorf("out of range String() = %q", got)
	}
}

func TestSplitNames(t *testing.T) {
	got, err := SplitNames("fajr, Zuhr,isha")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Fajr", "Dhuhr", "Isha"}
	if len(got) != len(want) {
		t.Fatalf("SplitNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := SplitNames("Fajr,Imsak"); err == nil {
		t.Error("expected error for unknown prayer name")
	}
	if _, err := SplitNames(" , "); err == nil {
		t.Error("expected error for empty list")
	}
}

// ---------------------------------------------------------------------------
// Day
// ---------------------------------------------------------------------------

func TestDay_GetAndLookup(t *testing.T) {
	d := sampleDay()

	asr, ok := d.Get(Asr)
	if !ok || asr.Formatted != "15:02" {
		t.Errorf("Get(Asr) = %+v, %v", asr, ok)
	}
	zuhr, ok := d.Lookup("Zuhr")
	if !ok || zuhr.Formatted != "12:13" {
		t.Errorf("Lookup(Zuhr) = %+v, %v", zuhr, ok)
	}
	if _, ok := d.Lookup("Imsak"); ok {
		t.Error("Lookup(Imsak) should fail")
	}
	if _, ok := (Day{}).Get(Fajr); ok {
		t.Error("Get on an empty day should fail")
	}
}

func TestDay_Prayers_SelectedSubset(t *testing.T) {
	prayers, err := sampleDay().Prayers([]string{"Fajr", "Maghrib", "Isha"}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prayers) != 3 {
		t.Fatalf("expected 3 prayers, got %d", len(prayers))
	}
	if prayers[0].Name != "Fajr" || prayers[1].Name != "Maghrib" || prayers[2].Name != "Isha" {
		t.Errorf("unexpected prayer names: %v", prayers)
	}
	if prayers[2].Time.Hour() != 19 || prayers[2].Time.Minute() != 10 {
		t.Errorf("Isha time = %v, want 19:10", prayers[2].Time.Format("15:04"))
	}
}

func TestDay_Prayers_UnknownPrayer(t *testing.T) {
	if _, err := sampleDay().Prayers([]string{"Tahajjud"}, time.UTC); err == nil {
		t.Fatal("expected error for unknown prayer, got nil")
	}
}

func TestDay_Prayers_IshaAfterMidnight(t *testing.T) {
	d := sampleDay()
	d.Times[Isha].Hours = 0.5 // 00:30, past midnight

	prayers, err := d.Prayers([]string{"Maghrib", "Isha"}, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prayers[1].Time.Day() != 1 || prayers[1].Time.Month() != time.March {
		t.Errorf("Isha should roll over to 2026-03-01, got %v", prayers[1].Time)
	}
	if !prayers[1].Time.After(prayers[0].Time) {
		t.Error("Isha should be after Maghrib")
	}
}

func TestDay_Prayers_FajrBeforeMidnight(t *testing.T) {
	// Mohe, 2025-06-21, MWL with the midnight rule at UTC+8:
	// 23:52 03:24 11:52 16:18 20:19 20:19 23:52.
	zone := Zone(8)
	hours := []float64{23 + 52.0/60, 3 + 24.0/60, 11 + 52.0/60, 16 + 18.0/60, 20 + 19.0/60, 20 + 19.0/60, 23 + 52.0/60}
	d := Day{Date: time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)}
	for i, h := range hours {
		d.Times = append(d.Times, Time{Event: Event(i), Hours: h})
	}

	prayers, err := d.Prayers(AllPrayerNames, zone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDates := []string{"2025-06-20", "2025-06-21", "2025-06-21", "2025-06-21", "2025-06-21", "2025-06-21", "2025-06-21"}
	for i, p := range prayers {
		if got := p.Time.Format(time.DateOnly); got != wantDates[i] {
			t.Errorf("%s on %s, want %s", p.Name, got, wantDates[i])
		}
		if i > 0 && p.Time.Before(prayers[i-1].Time) {
			t.Errorf("%s at %v is before %s", p.Name, p.Time, prayers[i-1].Name)
		}
	}

	next := NextPrayer(prayers, time.Date(2025, 6, 21, 10, 0, 0, 0, zone))
	if next == nil || next.Name != "Dhuhr" {
		t.Errorf("NextPrayer at 10:00 = %v, want Dhuhr", next)
	}
}

func TestDay_Prayers_Zone(t *testing.T) {
	zone := Zone(5)
	prayers, err := sampleDay().Prayers([]string{"Fajr"}, zone)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prayers[0].Time.Location() != zone {
		t.Errorf("expected location %v, got %v", zone, prayers[0].Time.Location())
	}
	if got := prayers[0].Time.UTC().Format("15:04"); got != "00:17" {
		t.Errorf("Fajr in UTC = %s, want 00:17", got)
	}
}

func TestZoneName(t *testing.T) {
	tests := []struct {
		offset float64
		want   string
	}{
		{0, "UTC"},
		{5, "UTC+5"},
		{5.5, "UTC+5:30"},
		{-3.5, "UTC-3:30"},
		{-8, "UTC-8"},
		{5.75, "UTC+5:45"},
	}
	for _, tt := range tests {
		if got := ZoneName(tt.offset); got != tt.want {
			t.Errorf("ZoneName(%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
	_, secs := time.Date(2026, 1, 1, 0, 0, 0, 0, Zone(5.5)).Zone()
	if secs != 19800 {
		t.Errorf("Zone(5.5) offset = %d s, want 19800", secs)
	}
}

// ---------------------------------------------------------------------------
// NextPrayer / CurrentPrayer
// ---------------------------------------------------------------------------

func TestNextPrayer_MiddleOfDay(t *testing.T) {
	prayers := samplePrayers(t)

	// At 13:00, Dhuhr (12:13) has passed, next should be Asr (15:02)
	next := NextPrayer(prayers, makeTime(t, 13, 0))
	if next == nil {
		t.Fatal("expected a next prayer, got nil")
	}
	if next.Name != "Asr" {
		t.Errorf("expected Asr, got %s", next.Name)
	}
}

func TestNextPrayer_BeforeFirstPrayer(t *testing.T) {
	next := NextPrayer(samplePrayers(t), makeTime(t, 3, 0))
	if next == nil {
		t.Fatal("expected a next prayer, got nil")
	}
	if next.Name != "Fajr" {
		t.Errorf("expected Fajr, got %s", next.Name)
	}
}

func TestNextPrayer_AfterAllPrayers(t *testing.T) {
	next := NextPrayer(samplePrayers(t), makeTime(t, 22, 0))
	if next != nil {
		t.Errorf("expected nil after all prayers, got %s", next.Name)
	}
}

func TestNextPrayer_ExactTime(t *testing.T) {
	// Exactly at Dhuhr time (12:13): should move to Asr since Dhuhr is not After now
	next := NextPrayer(samplePrayers(t), makeTime(t, 12, 13))
	if next == nil {
		t.Fatal("expected a next prayer, got nil")
	}
	if next.Name != "Asr" {
		t.Errorf("expected Asr, got %s", next.Name)
	}
}

func TestNextPrayer_EmptyList(t *testing.T) {
	next := NextPrayer([]Prayer{}, makeTime(t, 12, 0))
	if next != nil {
		t.Errorf("expected nil for empty prayer list, got %v", next)
	}
}

func TestCurrentPrayer(t *testing.T) {
	prayers := samplePrayers(t)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"before fajr", makeTime(t, 3, 0), ""},
		{"exactly fajr", makeTime(t, 5, 17), "Fajr"},
		{"afternoon", makeTime(t, 13, 0), "Dhuhr"},
		{"night", makeTime(t, 23, 0), "Isha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CurrentPrayer(prayers, tt.now)
			name := ""
			if got != nil {
				name = got.Name
			}
			if name != tt.want {
				t.Errorf("CurrentPrayer() = %q, want %q", name, tt.want)
			}
		})
	}
}

// TestCurrentAndNext_Consistency verifies that at any point in time, current
// is the prayer right before next.
func TestCurrentAndNext_Consistency(t *testing.T) {
	prayers := samplePrayers(t)
	for h := 6; h < 20; h++ {
		now := makeTime(t, h, 30)
		current := CurrentPrayer(prayers, now)
		next := NextPrayer(prayers, now)
		if current == nil || next == nil {
			continue
		}
		ci, ni := -1, -1
		for i := range prayers {
			if prayers[i].Name == current.Name {
				ci = i
			}
			if prayers[i].Name == next.Name {
				ni = i
			}
		}
		if ni != ci+1 {
			t.Errorf("at %02d:30 current=%s next=%s are not adjacent", h, current.Name, next.Name)
		}
	}
}

// ---------------------------------------------------------------------------
// TimeRemaining
// ---------------------------------------------------------------------------

func TestTimeRemaining(t *testing.T) {
	p := Prayer{Name: "Asr", Time: makeTime(t, 15, 2)}
	now := makeTime(t, 13, 0)

	d := TimeRemaining(p, now)
	if d.Hours() < 2.0 || d.Hours() > 2.1 {
		t.Errorf("expected ~2h, got %v", d)
	}
}

func TestTimeRemaining_Negative(t *testing.T) {
	p := Prayer{Name: "Fajr", Time: makeTime(t, 5, 0)}
	now := makeTime(t, 10, 0)

	d := TimeRemaining(p, now)
	if d >= 0 {
		t.Errorf("expected negative duration, got %v", d)
	}
}

// ---------------------------------------------------------------------------
// FormatRemaining
// ---------------------------------------------------------------------------

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"hours and minutes", 2*time.Hour + 15*time.Minute, "2h 15m"},
		{"only minutes", 45 * time.Minute, "45m"},
		{"exactly one hour", 1 * time.Hour, "1h 0m"},
		{"zero", 0, "0m"},
		{"negative", -30 * time.Minute, "0m"},
		{"large", 10*time.Hour + 59*time.Minute, "10h 59m"},
		{"just over an hour", 1*time.Hour + 1*time.Minute, "1h 1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRemaining(tt.duration)
			if got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ShortNames
// ---------------------------------------------------------------------------

func TestShortNames_AllPrayers(t *testing.T) {
	for _, name := range AllPrayerNames {
		if _, ok := ShortNames[name]; !ok {
			t.Errorf("ShortNames missing entry for prayer %q", name)
		}
	}
}
