package wayback

import (
	"errors"
	"testing"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

const snapshot = "https://web.archive.org/web/20250708180027/https://www.myfootdr.com.au/our-clinics/"

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{
			name:     "CaptureURL",
			input:    snapshot,
			expected: "https://www.myfootdr.com.au/our-clinics/",
			ok:       true,
		},
		{
			name:     "HTTPCapture",
			input:    "http://web.archive.org/web/2020/http://www.myfootdr.com.au/our-clinics/brisbane/",
			expected: "http://www.myfootdr.com.au/our-clinics/brisbane/",
			ok:       true,
		},
		{
			name:  "BareURL",
			input: "https://www.myfootdr.com.au/our-clinics/",
			ok:    false,
		},
		{
			name:  "OtherArchivePath",
			input: "https://web.archive.org/collections/",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Unwrap(tt.input)
			if ok != tt.ok {
				t.Fatalf("Unwrap(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Unwrap(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantOriginal string
	}{
		{
			name:         "WrappedTrailingSlashStripped",
			input:        snapshot,
			wantOriginal: "https://www.myfootdr.com.au/our-clinics",
		},
		{
			name:         "HTTPUpgraded",
			input:        "https://web.archive.org/web/2020/http://www.myfootdr.com.au/our-clinics/brisbane/",
			wantOriginal: "https://www.myfootdr.com.au/our-clinics/brisbane",
		},
		{
			name:         "HostLowercased",
			input:        "https://web.archive.org/web/2020/https://WWW.MyFootDr.com.au/Our-Clinics/",
			wantOriginal: "https://www.myfootdr.com.au/Our-Clinics",
		},
		{
			name:         "QueryAndFragmentDropped",
			input:        "https://web.archive.org/web/2020/https://www.myfootdr.com.au/our-clinics/?utm=x#map",
			wantOriginal: "https://www.myfootdr.com.au/our-clinics",
		},
		{
			name:         "BareURLIsItsOwnOriginal",
			input:        "https://www.myfootdr.com.au/our-clinics/noosa/",
			wantOriginal: "https://www.myfootdr.com.au/our-clinics/noosa",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.input)
			if err != nil {
				t.Fatalf("Canonicalize(%q) error: %v", tt.input, err)
			}
			if got.Original != tt.wantOriginal {
				t.Errorf("Canonicalize(%q).Original = %q, want %q", tt.input, got.Original, tt.wantOriginal)
			}
			if got.Wrapped != tt.input {
				t.Errorf("Canonicalize(%q).Wrapped = %q, want input unchanged", tt.input, got.Wrapped)
			}
		})
	}
}

func TestCanonicalize_Idempotent(t *testing.T) {
	inputs := []string{
		snapshot,
		"https://www.myfootdr.com.au/our-clinics/sunshine-coast/noosa/",
		"http://www.myfootdr.com.au/our-clinics/",
	}
	for _, input := range inputs {
		first, err := Canonicalize(input)
		if err != nil {
			t.Fatalf("Canonicalize(%q) error: %v", input, err)
		}
		second, err := Canonicalize(first.Original)
		if err != nil {
			t.Fatalf("Canonicalize(%q) error: %v", first.Original, err)
		}
		if second.Original != first.Original {
			t.Errorf("not idempotent: %q -> %q -> %q", input, first.Original, second.Original)
		}
	}
}

func TestCanonicalize_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"not-a-url",
		"/relative/path/",
		"https://web.archive.org/web/2020/garbage-no-scheme",
	}
	for _, input := range inputs {
		_, err := Canonicalize(input)
		if err == nil {
			t.Errorf("Canonicalize(%q) expected error, got nil", input)
			continue
		}
		if !errors.Is(err, utils.ErrMalformedURL) {
			t.Errorf("Canonicalize(%q) error = %v, want ErrMalformedURL", input, err)
		}
	}
}

func TestResolve(t *testing.T) {
	base, err := Canonicalize(snapshot)
	if err != nil {
		t.Fatalf("Canonicalize base: %v", err)
	}

	tests := []struct {
		name         string
		href         string
		wantOriginal string
	}{
		{
			name:         "RelativeInheritsWrapping",
			href:         "sunshine-coast/",
			wantOriginal: "https://www.myfootdr.com.au/our-clinics/sunshine-coast",
		},
		{
			name:         "AbsoluteWaybackUntouched",
			href:         "https://web.archive.org/web/20250708180027/https://www.myfootdr.com.au/our-clinics/brisbane/",
			wantOriginal: "https://www.myfootdr.com.au/our-clinics/brisbane",
		},
		{
			name:         "AbsoluteBareNotRewrapped",
			href:         "https://www.myfootdr.com.au/our-clinics/cairns/",
			wantOriginal: "https://www.myfootdr.com.au/our-clinics/cairns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(base, tt.href)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tt.href, err)
			}
			if got.Original != tt.wantOriginal {
				t.Errorf("Resolve(%q).Original = %q, want %q", tt.href, got.Original, tt.wantOriginal)
			}
		})
	}
}

func TestResolve_RelativeKeepsWaybackHost(t *testing.T) {
	base, err := Canonicalize(snapshot)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Resolve(base, "sunshine-coast/noosa/")
	if err != nil {
		t.Fatal(err)
	}
	if !IsWrapped(got.Wrapped) {
		t.Errorf("resolved relative href lost Wayback wrapping: %q", got.Wrapped)
	}
}
