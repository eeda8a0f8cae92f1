package spotify

import "testing"

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "hello", 5},
		{"hello", "", 5},
		{"same", "same", 0},
		{"a", "b", 1},
		{"flaw", "lawn", 2},
	}

	for _, tc := range tests {
		if got := levenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNormalizeSearchInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Bohemian Rhapsody", "bohemian rhapsody"},
		{"strips bracketed segments", "Song Title (Remastered 2011)", "song title"},
		{"strips square brackets", "Track [Live at Wembley]", "track"},
		{"drops noise tokens", "Hit Single Radio Edit", "hit single"},
		{"drops featuring", "Duet feat Somebody", "duet somebody"},
		{"collapses separators", "rock--and//roll", "rock and roll"},
		{"empty input", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeSearchInput(tc.input); got != tc.want {
				t.Fatalf("normalizeSearchInput(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestTrackMatchScore(t *testing.T) {
	tests := []struct {
		name      string
		title     string
		artist    string
		candidate spotifyTrack
		wantOK    bool
	}{
		{
			name:   "exact match",
			title:  "Clair de Lune",
			artist: "Debussy",
			candidate: spotifyTrack{
				Name:    "Clair de Lune",
				Artists: []spotifyArtist{{Name: "Debussy"}},
			},
			wantOK: true,
		},
		{
			name:   "remaster suffix is ignored",
			title:  "Clair de Lune",
			artist: "Debussy",
			candidate: spotifyTrack{
				Name:    "Clair de Lune (Remastered)",
				Artists: []spotifyArtist{{Name: "Debussy"}},
			},
			wantOK: true,
		},
		{
			name:   "wrong title fails",
			title:  "Clair de Lune",
			artist: "Debussy",
			candidate: spotifyTrack{
				Name:    "Moonlight Sonata",
				Artists: []spotifyArtist{{Name: "Debussy"}},
			},
			wantOK: false,
		},
		{
			name:   "wrong artist fails",
			title:  "Clair de Lune",
			artist: "Debussy",
			candidate: spotifyTrack{
				Name:    "Clair de Lune",
				Artists: []spotifyArtist{{Name: "Completely Different Orchestra"}},
			},
			wantOK: false,
		},
		{
			name:      "empty candidate fails",
			title:     "Clair de Lune",
			artist:    "Debussy",
			candidate: spotifyTrack{},
			wantOK:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := trackMatchScore(tc.title, tc.artist, tc.candidate)
			if ok != tc.wantOK {
				t.Fatalf("trackMatchScore ok = %v (score %v), want %v", ok, score, tc.wantOK)
			}
			if score < 0 || score > 1 {
				t.Fatalf("score %v out of [0,1]", score)
			}
			if tc.wantOK && score < minOverallSimilarity {
				t.Fatalf("accepted score %v below overall threshold", score)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	if got := similarity("abc", "abc"); got != 1.0 {
		t.Errorf("similarity of identical strings = %v, want 1.0", got)
	}
	if got := similarity("", ""); got != 1.0 {
		t.Errorf("similarity of empty strings = %v, want 1.0", got)
	}
	if got := similarity("abcd", "abce"); got != 0.75 {
		t.Errorf("similarity(abcd, abce) = %v, want 0.75", got)
	}
	if got := similarity("abc", "xyz"); got != 0.0 {
		t.Errorf("similarity(abc, xyz) = %v, want 0.0", got)
	}
}
