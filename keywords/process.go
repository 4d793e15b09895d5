// Package keywords holds the keyword bookkeeping that needs no model call.
package keywords

import (
	"strings"
	"unicode/utf8"
)

// trafficPerChar is a placeholder multiplier until a real volume source exists.
const trafficPerChar = 100

// Report echoes the request with an estimated traffic figure per keyword.
type Report struct {
	Niche       string         `json:"niche"`
	Keywords    []string       `json:"keywords"`
	TrafficData map[string]int `json:"traffic_data"`
}

// Process builds a Report. Blank keywords are kept in Keywords but get no estimate.
func Process(niche string, kws []string) Report {
	traffic := make(map[string]int, len(kws))
	for _, kw := range kws {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		traffic[kw] = EstimateTraffic(kw)
	}
	if kws == nil {
		kws = []string{}
	}
	return Report{Niche: niche, Keywords: kws, TrafficData: traffic}
}

// EstimateTraffic is 100 per character of the keyword.
func EstimateTraffic(keyword string) int {
	return utf8.RuneCountInString(keyword) * trafficPerChar
}
