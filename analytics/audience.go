package analytics

import (
	"math"
	"strings"

	"gebo/types"
)

type audienceProfile struct {
	demographic string
	regions     []string
	peakHours   []int
}

var audienceByCategory = map[string]audienceProfile{
	"tech": {
		demographic: "18-34, developers and early adopters",
		regions:     []string{"United States", "India", "Germany"},
		peakHours:   []int{12, 20, 21},
	},
	"education": {
		demographic: "18-24, students",
		regions:     []string{"India", "United States", "Philippines"},
		peakHours:   []int{9, 16, 19},
	},
	"finance": {
		demographic: "25-44, retail investors",
		regions:     []string{"United States", "United Kingdom", "Singapore"},
		peakHours:   []int{7, 12, 18},
	},
	"gaming": {
		demographic: "13-24, competitive gamers",
		regions:     []string{"United States", "Brazil", "South Korea"},
		peakHours:   []int{17, 21, 23},
	},
	"music": {
		demographic: "16-30, independent music fans",
		regions:     []string{"United States", "Mexico", "Japan"},
		peakHours:   []int{8, 18, 22},
	},
	"entertainment": {
		demographic: "18-34, general audience",
		regions:     []string{"United States", "United Kingdom", "Canada"},
		peakHours:   []int{19, 20, 22},
	},
}

var defaultAudience = audienceProfile{
	demographic: "18-44, general audience",
	regions:     []string{"United States", "United Kingdom", "India"},
	peakHours:   []int{12, 19, 21},
}

// Audience returns the mock audience insight for a video. The profile comes
// from the category table and retention from duration and engagement.
func Audience(v types.Video) types.AudienceInsight {
	profile, ok := audienceByCategory[strings.ToLower(v.Category)]
	if !ok {
		profile = defaultAudience
	}

	engagement := math.Min(v.EngagementScore(), 0.5)

	return types.AudienceInsight{
		VideoID:            v.ID,
		EngagementRate:     math.Round(engagement*10000) / 10000,
		PrimaryDemographic: profile.demographic,
		TopRegions:         append([]string(nil), profile.regions...),
		PeakHours:          append([]int(nil), profile.peakHours...),
		RetentionEstimate:  retention(v.DurationSeconds, engagement),
		Source:             types.SourceMock,
	}
}

// retention starts from a duration baseline and rises with engagement,
// capped at 0.95
func retention(seconds int, engagement float64) float64 {
	base := 0.4
	switch {
	case seconds < 60:
		base = 0.85
	case seconds <= 600:
		base = 0.6
	}
	r := math.Min(base+engagement*0.2, 0.95)
	return math.Round(r*100) / 100
}
