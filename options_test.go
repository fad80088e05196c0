package locmap

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestParseTriState(t *testing.T) {
	var tts = []struct {
		s   string
		val TriState
	}{
		{"auto", Auto},
		{"yes", Yes},
		{"no", No},
		{"YES", Yes},
	}
	for _, tt := range tts {
		t.Run(tt.s, func(t *testing.T) {
			val, err := ParseTriState(tt.s)
			test.Error(t, err)
			test.T(t, val, tt.val)
		})
	}

	_, err := ParseTriState("maybe")
	test.That(t, err != nil, "expected parse error")
}

func TestParseStreetDetail(t *testing.T) {
	n, err := ParseStreetDetail("auto")
	test.Error(t, err)
	test.T(t, n, StreetDetailAuto)

	n, err = ParseStreetDetail("4")
	test.Error(t, err)
	test.T(t, n, 4)

	for _, s := range []string{"-1", "7", "one", ""} {
		_, err := ParseStreetDetail(s)
		test.That(t, err != nil, "expected parse error for", s)
	}
}

func TestFetchSelection(t *testing.T) {
	res := DefaultOptions.FetchSelection()
	test.T(t, res.StreetDetail, MaxStreetDetail)
	test.That(t, res.Railroads && res.Tramways && res.Walkways && res.Parks, "automatic options fetch everything")

	opts := Options{StreetDetail: 2, Railroads: No, Parks: Yes, BorderDetail: 4}
	res = opts.FetchSelection()
	test.T(t, res.StreetDetail, 2)
	test.That(t, !res.Railroads, "refused features are not fetched")
	test.That(t, res.Parks, "forced features are fetched")
	test.T(t, res.BorderDetail, 4)
}
