package prayer

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
)

var (
	islamabad = geo.Location{Latitude: 33.6995, Longitude: 73.0363}
	aberdeen  = geo.Location{Latitude: 57.15, Longitude: -2.09}
	longyear  = geo.Location{Latitude: 78.22, Longitude: 15.65}
	makkah    = geo.Location{Latitude: 21.4225, Longitude: 39.8262}
	tehran    = geo.Location{Latitude: 35.6892, Longitude: 51.3890}
	sydney    = geo.Location{Latitude: -33.8688, Longitude: 151.2093}
	london    = geo.Location{Latitude: 51.5074, Longitude: -0.1278}
	mohe      = geo.Location{Latitude: 52.97, Longitude: 122.54}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustCompute(t *testing.T, loc geo.Location, d time.Time, cfg Config) Day {
	t.Helper()
	day, err := Compute(loc, d, cfg)
	if err != nil {
		t.Fatalf("Compute(%v, %s) unexpected error: %v", loc, d.Format(time.DateOnly), err)
	}
	return day
}

func formatted(d Day) []string {
	out := make([]string, len(d.Times))
	for i, t := range d.Times {
		out[i] = t.Formatted
	}
	return out
}

func cfgWith(conv Convention, asr AsrMethod, offset float64) Config {
	cfg := DefaultConfig()
	cfg.Convention = conv
	cfg.Asr = asr
	cfg.UTCOffset = offset
	cfg.TimeFormat = Hour24
	return cfg
}

// ---------------------------------------------------------------------------
// Reference schedules
// ---------------------------------------------------------------------------

func TestCompute_Islamabad(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UTCOffset = 5

	day := mustCompute(t, islamabad, date(2025, time.June, 5), cfg)

	want := []string{"03:15 am", "04:58 am", "12:06 pm", "05:06 pm", "07:15 pm", "07:15 pm", "08:58 pm"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("formatted = %v\nwant %v", got, want)
	}

	hours := []float64{3.254792, 4.958613, 12.106551, 17.094925, 19.258029, 19.258029, 20.965168}
	for i, h := range hours {
		if got := day.Times[i].Hours; math.Abs(got-h) > 1.0/60 {
			t.Errorf("%s = %.6f h, want %.6f h", Event(i), got, h)
		}
	}
	if !day.Date.Equal(date(2025, time.June, 5)) {
		t.Errorf("Date = %v", day.Date)
	}
}

func TestCompute_Islamabad_Shafii(t *testing.T) {
	day := mustCompute(t, islamabad, date(2025, time.June, 5), cfgWith(Karachi, Shafii, 5))
	asr, _ := day.Get(Asr)
	if asr.Formatted != "15:51" {
		t.Errorf("Shafii Asr = %s, want 15:51", asr.Formatted)
	}
}

func TestCompute_Formats(t *testing.T) {
	tests := []struct {
		format TimeFormat
		want   []string
	}{
		{Hour24, []string{"03:15", "04:58", "12:06", "17:06", "19:15", "19:15", "20:58"}},
		{Hour12NoSuffix, []string{"03:15", "04:58", "12:06", "05:06", "07:15", "07:15", "08:58"}},
		{Floating, []string{"3.25", "4.97", "12.10", "17.10", "19.25", "19.25", "20.97"}},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			cfg := cfgWith(Karachi, Hanafi, 5)
			cfg.TimeFormat = tt.format
			got := formatted(mustCompute(t, islamabad, date(2025, time.June, 5), cfg))
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompute_Sydney(t *testing.T) {
	day := mustCompute(t, sydney, date(2025, time.December, 21), cfgWith(ISNA, Shafii, 11))
	want := []string{"04:17", "05:41", "12:53", "16:38", "20:06", "20:06", "21:30"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompute_MakkahFixedIsha(t *testing.T) {
	day := mustCompute(t, makkah, date(2025, time.March, 10), cfgWith(Makkah, Shafii, 3))

	want := []string{"05:18", "06:34", "12:31", "15:54", "18:28", "18:28", "19:58"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	maghrib, _ := day.Get(Maghrib)
	isha, _ := day.Get(Isha)
	if d := isha.Hours - maghrib.Hours; math.Abs(d-1.5) > 1e-9 {
		t.Errorf("Isha - Maghrib = %v h, want 1.5", d)
	}
}

func TestCompute_TehranMaghribAngle(t *testing.T) {
	day := mustCompute(t, tehran, date(2025, time.March, 21), cfgWith(Tehran, Shafii, 3.5))

	want := []string{"04:43", "06:07", "12:12", "15:39", "18:17", "18:35", "19:22"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	sunset, _ := day.Get(Sunset)
	maghrib, _ := day.Get(Maghrib)
	if maghrib.Hours <= sunset.Hours {
		t.Errorf("Maghrib %.4f should be after sunset %.4f", maghrib.Hours, sunset.Hours)
	}
}

// ---------------------------------------------------------------------------
// Invariants
// ---------------------------------------------------------------------------

func checkOrder(t *testing.T, label string, d Day) {
	t.Helper()
	h := make([]float64, len(d.Times))
	for i, tm := range d.Times {
		h[i] = tm.Hours
	}
	ok := h[Fajr] < h[Sunrise] && h[Sunrise] < h[Dhuhr] && h[Dhuhr] < h[Asr] &&
		h[Asr] < h[Sunset] && h[Sunset] <= h[Maghrib] && h[Maghrib] <= h[Isha]
	if !ok {
		t.Errorf("%s: events out of order: %v", label, formatted(d))
	}
}

func TestCompute_OrderingGrid(t *testing.T) {
	longitudes := []float64{-120, 0, 73}
	for _, conv := range Conventions() {
		for _, asr := range []AsrMethod{Shafii, Hanafi} {
			for lat := -55.0; lat <= 55; lat += 5 {
				for _, lon := range longitudes {
					for m := time.January; m <= time.December; m++ {
						cfg := cfgWith(conv, asr, math.Round(lon/15))
						if math.Abs(lat) > 45 {
							cfg.HighLatitude = AngleBased
						}
						loc := geo.Location{Latitude: lat, Longitude: lon}
						day, err := Compute(loc, date(2025, m, 15), cfg)
						label := conv.String() + "/" + asr.String() + "/" + loc.String() + "/" + m.String()
						if err != nil {
							t.Errorf("%s: unexpected error: %v", label, err)
							continue
						}
						checkOrder(t, label, day)
					}
				}
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	cfg := cfgWith(MWL, Shafii, 1)
	cfg.HighLatitude = AngleBased
	a := mustCompute(t, london, date(2025, time.June, 21), cfg)
	b := mustCompute(t, london, date(2025, time.June, 21), cfg)
	if !slices.Equal(formatted(a), formatted(b)) {
		t.Errorf("repeated Compute differs: %v vs %v", formatted(a), formatted(b))
	}
	for i := range a.Times {
		if a.Times[i].Hours != b.Times[i].Hours {
			t.Errorf("%s hours differ: %v vs %v", Event(i), a.Times[i].Hours, b.Times[i].Hours)
		}
	}
}

func TestCompute_IgnoresTimeOfDay(t *testing.T) {
	cfg := cfgWith(Karachi, Hanafi, 5)
	morning := mustCompute(t, islamabad, time.Date(2025, 6, 5, 0, 1, 0, 0, time.UTC), cfg)
	evening := mustCompute(t, islamabad, time.Date(2025, 6, 5, 23, 59, 0, 0, Zone(5)), cfg)
	if !slices.Equal(formatted(morning), formatted(evening)) {
		t.Errorf("time of day changed the schedule: %v vs %v", formatted(morning), formatted(evening))
	}
}

func TestCompute_SinglePass(t *testing.T) {
	converged := mustCompute(t, islamabad, date(2025, time.June, 5), cfgWith(Karachi, Hanafi, 5))

	cfg := cfgWith(Karachi, Hanafi, 5)
	cfg.Passes = 1
	single := mustCompute(t, islamabad, date(2025, time.June, 5), cfg)

	raw := []float64{3.254283, 4.958463, 12.106554, 17.094010, 19.257615, 19.257615, 20.963738}
	for i := range single.Times {
		if math.Abs(single.Times[i].Hours-raw[i]) > 1.0/60 {
			t.Errorf("single pass %s = %.6f, want %.6f", Event(i), single.Times[i].Hours, raw[i])
		}
		if d := math.Abs(single.Times[i].Hours - converged.Times[i].Hours); d > 1.0/60 {
			t.Errorf("%s: single pass differs from converged by %.4f h", Event(i), d)
		}
	}
}

// ---------------------------------------------------------------------------
// Corrections and offsets
// ---------------------------------------------------------------------------

func TestCompute_Correction(t *testing.T) {
	cfg := cfgWith(Karachi, Hanafi, 5)
	cfg.Correction = Correction{Fajr: 59, Dhuhr: -59, Maghrib: 60, Isha: -60}

	day := mustCompute(t, islamabad, date(2025, time.June, 5), cfg)
	want := []string{"04:14", "04:58", "11:07", "17:06", "19:15", "19:15", "20:58"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCompute_DhuhrMinutes(t *testing.T) {
	cfg := cfgWith(Karachi, Hanafi, 5)
	cfg.DhuhrMinutes = 3

	day := mustCompute(t, islamabad, date(2025, time.June, 5), cfg)
	dhuhr, _ := day.Get(Dhuhr)
	if dhuhr.Formatted != "12:09" {
		t.Errorf("Dhuhr = %s, want 12:09", dhuhr.Formatted)
	}
	asr, _ := day.Get(Asr)
	if asr.Formatted != "17:06" {
		t.Errorf("Asr moved with Dhuhr: %s", asr.Formatted)
	}
}

func TestCompute_UTCOffsetShiftsEverything(t *testing.T) {
	base := mustCompute(t, islamabad, date(2025, time.June, 5), cfgWith(Karachi, Hanafi, 5))
	shifted := mustCompute(t, islamabad, date(2025, time.June, 5), cfgWith(Karachi, Hanafi, 5.5))
	for i := range base.Times {
		d := shifted.Times[i].Hours - base.Times[i].Hours
		if math.Abs(d-0.5) > 1e-9 {
			t.Errorf("%s shifted by %v h, want 0.5", Event(i), d)
		}
	}
}

func TestCompute_CustomAngles(t *testing.T) {
	d := date(2025, time.June, 5)

	defaults := mustCompute(t, islamabad, d, cfgWith(Custom, Shafii, 5))
	explicit := cfgWith(Custom, Shafii, 5)
	explicit.Custom = CustomAngles{Fajr: 9, Isha: 14}
	if !slices.Equal(formatted(defaults), formatted(mustCompute(t, islamabad, d, explicit))) {
		t.Error("zero custom angles should fall back to 9 and 14 degrees")
	}

	karachi := mustCompute(t, islamabad, d, cfgWith(Karachi, Shafii, 5))
	asKarachi := cfgWith(Custom, Shafii, 5)
	asKarachi.Custom = CustomAngles{Fajr: 18, Isha: 18}
	if got := formatted(mustCompute(t, islamabad, d, asKarachi)); !slices.Equal(got, formatted(karachi)) {
		t.Errorf("custom 18/18 = %v, want Karachi %v", got, formatted(karachi))
	}
}

// ---------------------------------------------------------------------------
// High latitudes
// ---------------------------------------------------------------------------

func TestCompute_HighLatitudeNone(t *testing.T) {
	_, err := Compute(aberdeen, date(2025, time.June, 21), cfgWith(MWL, Shafii, 1))

	var ue *UnreachableError
	if !errors.As(err, &ue) {
		t.Fatalf("expected *UnreachableError, got %v", err)
	}
	if !slices.Equal(ue.Events, []Event{Fajr, Isha}) {
		t.Errorf("unreachable events = %v, want [Fajr Isha]", ue.Events)
	}
	if !errors.Is(err, ErrSunAngleUnreachable) {
		t.Error("error should match ErrSunAngleUnreachable")
	}
	if !strings.HasPrefix(err.Error(), "2025-06-21: Fajr, Isha: ") {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestCompute_HighLatitudeRules(t *testing.T) {
	tests := []struct {
		rule HighLatitudeRule
		fajr string
		isha string
	}{
		{AngleBased, "02:23", "23:51"},
		{MidNight, "01:10", "01:10"},
		{OneSeventh, "03:20", "23:00"},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			cfg := cfgWith(MWL, Shafii, 1)
			cfg.HighLatitude = tt.rule
			day := mustCompute(t, aberdeen, date(2025, time.June, 21), cfg)

			fajr, _ := day.Get(Fajr)
			isha, _ := day.Get(Isha)
			if fajr.Formatted != tt.fajr || isha.Formatted != tt.isha {
				t.Errorf("Fajr/Isha = %s/%s, want %s/%s", fajr.Formatted, isha.Formatted, tt.fajr, tt.isha)
			}
		})
	}
}

func TestCompute_MidnightRuleFajrBeforeMidnight(t *testing.T) {
	cfg := cfgWith(MWL, Shafii, 8)
	cfg.HighLatitude = MidNight
	day := mustCompute(t, mohe, date(2025, time.June, 21), cfg)

	want := []string{"23:52", "03:24", "11:52", "16:18", "20:19", "20:19", "23:52"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Fatalf("times = %v, want %v", got, want)
	}

	prayers, err := day.Prayers(AllPrayerNames, Zone(8))
	if err != nil {
		t.Fatal(err)
	}
	if got := prayers[0].Time.Format("2006-01-02 15:04"); got != "2025-06-20 23:52" {
		t.Errorf("Fajr placed at %s, want the evening before", got)
	}
	next := NextPrayer(prayers, time.Date(2025, 6, 21, 10, 0, 0, 0, Zone(8)))
	if next == nil || next.Name != "Dhuhr" {
		t.Errorf("NextPrayer at 10:00 = %v, want Dhuhr", next)
	}
}

func TestCompute_AngleBasedAberdeen(t *testing.T) {
	cfg := cfgWith(MWL, Shafii, 1)
	cfg.HighLatitude = AngleBased
	day := mustCompute(t, aberdeen, date(2025, time.June, 21), cfg)

	want := []string{"02:23", "04:12", "13:10", "17:45", "22:08", "22:08", "23:51"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	sunrise, _ := day.Get(Sunrise)
	sunset, _ := day.Get(Sunset)
	fajr, _ := day.Get(Fajr)
	night := 24 - sunset.Hours + sunrise.Hours
	if math.Abs(night-6.068) > 0.01 {
		t.Errorf("night = %.3f h, want ~6.068", night)
	}
	if bound := 18.0 / 60 * night; sunrise.Hours-fajr.Hours > bound+1e-9 {
		t.Errorf("Fajr is %.4f h before sunrise, bound %.4f", sunrise.Hours-fajr.Hours, bound)
	}
}

func TestCompute_AngleBasedOnlyAdjustsOutliers(t *testing.T) {
	none := cfgWith(MWL, Shafii, 5)
	angle := none
	angle.HighLatitude = AngleBased
	d := date(2025, time.June, 5)
	if a, b := formatted(mustCompute(t, islamabad, d, none)), formatted(mustCompute(t, islamabad, d, angle)); !slices.Equal(a, b) {
		t.Errorf("angle-based rule changed a mid-latitude schedule: %v vs %v", a, b)
	}

	cfg := cfgWith(MWL, Shafii, 1)
	cfg.HighLatitude = AngleBased
	day := mustCompute(t, london, date(2025, time.June, 21), cfg)
	want := []string{"02:31", "04:43", "13:02", "17:25", "21:22", "21:22", "23:27"}
	if got := formatted(day); !slices.Equal(got, want) {
		t.Errorf("London got %v, want %v", got, want)
	}
}

func TestCompute_PolarDay(t *testing.T) {
	for _, rule := range []HighLatitudeRule{NoAdjustment, AngleBased} {
		cfg := cfgWith(MWL, Shafii, 2)
		cfg.HighLatitude = rule
		_, err := Compute(longyear, date(2025, time.June, 21), cfg)

		var ue *UnreachableError
		if !errors.As(err, &ue) {
			t.Fatalf("%s: expected *UnreachableError, got %v", rule, err)
		}
		want := []Event{Fajr, Sunrise, Sunset, Maghrib, Isha}
		if !slices.Equal(ue.Events, want) {
			t.Errorf("%s: unreachable = %v, want %v", rule, ue.Events, want)
		}
	}
}

// ---------------------------------------------------------------------------
// Input validation
// ---------------------------------------------------------------------------

func TestCompute_InvalidCoordinate(t *testing.T) {
	tests := []geo.Location{
		{Latitude: 91, Longitude: 0},
		{Latitude: -90.5, Longitude: 0},
		{Latitude: 0, Longitude: 181},
		{Latitude: math.NaN(), Longitude: 0},
		{Latitude: 0, Longitude: math.Inf(1)},
	}
	for _, loc := range tests {
		_, err := Compute(loc, date(2025, time.June, 5), DefaultConfig())
		if !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("Compute(%v) error = %v, want ErrInvalidCoordinate", loc, err)
		}
	}
}
