package rotation

import (
	"testing"

	"github.com/KasumiMercury/primind-treatment-schedule/internal/domain"
)

func TestSuggestedSite(t *testing.T) {
	tests := []struct {
		last domain.Site
		want domain.Site
	}{
		{last: domain.SiteAbdomenLeft, want: domain.SiteAbdomenRight},
		{last: domain.SiteThighRight, want: domain.SiteArmLeft},
		{last: domain.SiteArmRight, want: domain.SiteAbdomenLeft},
		{last: "", want: domain.SiteAbdomenLeft},
		{last: "shoulder", want: domain.SiteAbdomenLeft},
	}

	for _, tt := range tests {
		if got := SuggestedSite(tt.last); got != tt.want {
			t.Errorf("SuggestedSite(%q) = %q, want %q", tt.last, got, tt.want)
		}
	}
}

func TestSuggestedSite_PeriodSix(t *testing.T) {
	for _, start := range Order {
		site := start
		seen := make(map[domain.Site]bool)
		for i := 0; i < len(Order); i++ {
			seen[site] = true
			site = SuggestedSite(site)
		}
		if site != start {
			t.Errorf("cycle from %q returned to %q after %d steps", start, site, len(Order))
		}
		if len(seen) != len(Order) {
			t.Errorf("cycle from %q visited %d sites, want %d", start, len(seen), len(Order))
		}
	}
}
