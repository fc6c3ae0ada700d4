package teamname

import "testing"

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(DefaultAliases)
	cases := map[string]string{
		"Man City":               "Manchester City",
		"manchester city fc":     "Manchester City",
		"  Man   Utd ":           "Manchester United",
		"Tottenham Hotspur F.C.": "Tottenham",
		"Spurs":                  "Tottenham",
		"Arsenal FC":             "Arsenal",
		"AFC Bournemouth":        "AFC Bournemouth",
		"Brighton & Hove Albion": "Brighton & Hove Albion",
		"Newcastle United FC":    "Newcastle",
		"":                       "",
	}
	for in, want := range cases {
		if got := n.Normalize(in); got != want {
			t.Fatalf("Normalize(%q): want %q got %q", in, want, got)
		}
	}
}

func TestNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(DefaultAliases)
	inputs := []string{
		"Man City", "Man Utd FC", "Spurs", "Tottenham Hotspur", "Arsenal F.C.", "Chelsea AFC",
		"Liverpool", "AFC Bournemouth", "Wolves", "Crystal Palace FC FC", "  west   ham  ",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		if twice := n.Normalize(once); twice != once {
			t.Fatalf("not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizer_BelongsTo(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(DefaultAliases)
	elite := []string{"Arsenal", "Chelsea", "Liverpool", "Manchester City", "Manchester United", "Tottenham"}

	if !n.BelongsTo("Man Utd", elite) {
		t.Fatalf("expected alias to match elite member")
	}
	if !n.BelongsTo("Liverpool FC", elite) {
		t.Fatalf("expected suffixed name to match")
	}
	if n.BelongsTo("Newcastle", elite) {
		t.Fatalf("did not expect Newcastle to be elite")
	}
	if n.BelongsTo("", elite) {
		t.Fatalf("empty name never belongs")
	}
	if n.BelongsTo("Manchester City", []string{"Manchester United"}) {
		t.Fatalf("city and united must not match each other")
	}
}

func TestNormalizer_ResolvesAliasChains(t *testing.T) {
	t.Parallel()

	aliases := map[string]string{
		"Spurs":             "Tottenham Hotspur",
		"Tottenham Hotspur": "Tottenham",
		"THFC":              "Spurs",
		"Gunners":           "Arsenal",
		"Arsenal":           "The Gunners",
		"The Gunners":       "Gunners",
	}
	// Map iteration order varies between builds; every build must agree.
	for i := 0; i < 20; i++ {
		n := NewNormalizer(aliases)
		for _, in := range []string{"Spurs", "THFC", "Tottenham Hotspur", "tottenham"} {
			if got := n.Normalize(in); got != "Tottenham" {
				t.Fatalf("Normalize(%q): want Tottenham got %q", in, got)
			}
		}
		for _, in := range []string{"Gunners", "Arsenal", "The Gunners"} {
			if got := n.Normalize(in); got != "Arsenal" {
				t.Fatalf("cycle member %q: want Arsenal got %q", in, got)
			}
		}
	}
}

func TestNormalizer_StripsCanonicalSuffix(t *testing.T) {
	t.Parallel()

	n := NewNormalizer(map[string]string{"Seagulls": "Brighton FC", "St. Pauli": "FC St. Pauli"})
	cases := map[string]string{
		"Seagulls":    "Brighton",
		"Brighton FC": "Brighton",
		"brighton":    "Brighton",
		"St. Pauli":   "FC St. Pauli",
	}
	for in, want := range cases {
		got := n.Normalize(in)
		if got != want {
			t.Fatalf("Normalize(%q): want %q got %q", in, want, got)
		}
		if again := n.Normalize(got); again != got {
			t.Fatalf("not idempotent for %q: %q then %q", in, got, again)
		}
	}
}
