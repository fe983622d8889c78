// Package rotation suggests the next injection site from a fixed cycle.
package rotation

import "github.com/KasumiMercury/primind-treatment-schedule/internal/domain"

// Order is the rotation cycle. The suggestion only looks at the last site.
var Order = []domain.Site{
	domain.SiteAbdomenLeft,
	domain.SiteAbdomenRight,
	domain.SiteThighLeft,
	domain.SiteThighRight,
	domain.SiteArmLeft,
	domain.SiteArmRight,
}

// SuggestedSite returns the site after last in Order, or the first site when
// last is not part of the cycle.
func SuggestedSite(last domain.Site) domain.Site {
	for i, site := range Order {
		if site == last {
			return Order[(i+1)%len(Order)]
		}
	}
	return Order[0]
}
