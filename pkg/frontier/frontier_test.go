package frontier

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Sriram-PR/clinic-scraper/pkg/wayback"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func crawlURL(t *testing.T, raw string) wayback.CrawlURL {
	t.Helper()
	u, err := wayback.Canonicalize(raw)
	if err != nil {
		t.Fatalf("Canonicalize(%q): %v", raw, err)
	}
	return u
}

func TestEnqueue_DedupOnUnwrappedPath(t *testing.T) {
	f := New(0, testLogger())

	// Same page captured at two different timestamps
	a := crawlURL(t, "https://web.archive.org/web/20250708/https://www.myfootdr.com.au/our-clinics/noosa/")
	b := crawlURL(t, "https://web.archive.org/web/20240101/https://www.myfootdr.com.au/our-clinics/noosa/")

	if !f.Enqueue(a) {
		t.Error("first Enqueue returned false, want true")
	}
	if f.Enqueue(b) {
		t.Error("Enqueue of same unwrapped path returned true, want false")
	}
	if f.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", f.Pending())
	}
}

func TestEnqueue_VisitedNotRequeued(t *testing.T) {
	f := New(0, testLogger())
	u := crawlURL(t, "https://web.archive.org/web/2025/https://www.myfootdr.com.au/our-clinics/")

	f.Enqueue(u)
	if _, ok := f.Next(); !ok {
		t.Fatal("Next() returned ok=false, want true")
	}
	if f.Enqueue(u) {
		t.Error("re-enqueue after visit returned true, want false")
	}
}

func TestNext_FIFOOrder(t *testing.T) {
	f := New(0, testLogger())
	var want []string
	for i := 0; i < 5; i++ {
		raw := fmt.Sprintf("https://www.myfootdr.com.au/our-clinics/region-%d/", i)
		u := crawlURL(t, raw)
		f.Enqueue(u)
		want = append(want, u.Key())
	}

	for i, expected := range want {
		u, ok := f.Next()
		if !ok {
			t.Fatalf("Next() #%d returned ok=false", i)
		}
		if u.Key() != expected {
			t.Errorf("Next() #%d = %q, want %q", i, u.Key(), expected)
		}
	}
	if _, ok := f.Next(); ok {
		t.Error("Next() on drained queue returned ok=true")
	}
}

func TestNext_PageBudget(t *testing.T) {
	f := New(2, testLogger())
	for i := 0; i < 5; i++ {
		f.Enqueue(crawlURL(t, fmt.Sprintf("https://www.myfootdr.com.au/our-clinics/r%d/", i)))
	}

	count := 0
	for {
		_, ok := f.Next()
		if !ok {
			break
		}
		count++
	}

	if count != 2 {
		t.Errorf("visited %d pages, want 2 (budget)", count)
	}
	if f.Pending() != 3 {
		t.Errorf("Pending() = %d, want 3", f.Pending())
	}
	if f.Visited() != 2 {
		t.Errorf("Visited() = %d, want 2", f.Visited())
	}
}

func TestMarkFailed(t *testing.T) {
	f := New(0, testLogger())
	u := crawlURL(t, "https://www.myfootdr.com.au/our-clinics/broken/")
	f.Enqueue(u)
	f.Next()

	fetchErr := errors.New("boom")
	f.MarkFailed(u, fetchErr)

	if len(f.Failures()) != 1 {
		t.Fatalf("Failures() has %d entries, want 1", len(f.Failures()))
	}
	if got := f.Failures()[u.Key()]; !errors.Is(got, fetchErr) {
		t.Errorf("Failures()[%q] = %v, want %v", u.Key(), got, fetchErr)
	}
	if f.Enqueue(u) {
		t.Error("failed URL was re-queued")
	}
}
