package matching

import (
	"math"
	"strings"
	"time"

	"pharmaflux/internal/domain/mission"
	"pharmaflux/internal/domain/profile"

	"github.com/google/uuid"
)

// Criteria bounds the eligibility predicate. Zero values disable the
// corresponding bound.
type Criteria struct {
	// RadiusKm limits candidates to a haversine distance from the mission
	// coordinates. <= 0 disables the geographic bound.
	RadiusKm float64
}

// Engine decides which candidates may be proposed a mission. It is pure:
// persistence and deduplication stay with the caller.
type Engine interface {
	Eligible(c profile.Profile, m mission.Mission) bool
}

type CriteriaEngine struct {
	Criteria Criteria
}

func NewEngine(c Criteria) *CriteriaEngine {
	return &CriteriaEngine{Criteria: c}
}

func (e *CriteriaEngine) Eligible(c profile.Profile, m mission.Mission) bool {
	if !c.IsCandidate() {
		return false
	}
	if !hasSkillTag(c.SkillTags, string(m.FacilityType)) {
		return false
	}
	if !availabilityOverlaps(c.Availability, m) {
		return false
	}
	if e.Criteria.RadiusKm > 0 && c.Lat != nil && c.Lon != nil {
		if distanceKm(*c.Lat, *c.Lon, m.Lat, m.Lon) > e.Criteria.RadiusKm {
			return false
		}
	}
	return true
}

// Filter returns the IDs of eligible candidates, input order preserved.
func Filter(e Engine, candidates []profile.Profile, m mission.Mission) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		if c.ID == uuid.Nil {
			continue
		}
		if e.Eligible(c, m) {
			out = append(out, c.ID)
		}
	}
	return out
}

func hasSkillTag(tags []string, want string) bool {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" {
		return false
	}
	for _, t := range tags {
		if strings.ToLower(strings.TrimSpace(t)) == want {
			return true
		}
	}
	return false
}

func availabilityOverlaps(windows []profile.AvailabilityWindow, m mission.Mission) bool {
	for _, w := range windows {
		if !dateRangesOverlap(w.StartDate, w.EndDate, m.StartDate, m.EndDate) {
			continue
		}
		if timeSpansOverlap(w.StartTime, w.EndTime, m.StartTime, m.EndTime) {
			return true
		}
	}
	return false
}

func dateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.IsZero() || bEnd.IsZero() {
		return false
	}
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// timeSpansOverlap compares "HH:MM" clock spans. Unparseable spans count
// as no overlap rather than a wildcard.
func timeSpansOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, ok1 := parseClock(aStart)
	ae, ok2 := parseClock(aEnd)
	bs, ok3 := parseClock(bStart)
	be, ok4 := parseClock(bEnd)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return as < be && bs < ae
}

func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

const earthRadiusKm = 6371.0

func distanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(a)))
}
