package negotiate

// ──────────────────────────────────────────────
// Deliverable Catalog — platforms, content types, rate constants
// ──────────────────────────────────────────────

// Platform is a social platform a deliverable is published on.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
)

// ContentType identifies a deliverable kind. The string form doubles as the
// wire key in content-requirement maps ("instagram_post": 4).
type ContentType string

const (
	ContentInstagramPost  ContentType = "instagram_post"
	ContentInstagramReel  ContentType = "instagram_reel"
	ContentInstagramStory ContentType = "instagram_story"
	ContentYouTubeLong    ContentType = "youtube_long_form"
	ContentYouTubeShorts  ContentType = "youtube_shorts"
	ContentLinkedInPost   ContentType = "linkedin_post"
	ContentLinkedInVideo  ContentType = "linkedin_video"
	ContentTikTokVideo    ContentType = "tiktok_video"
	ContentTwitterPost    ContentType = "twitter_post"
	ContentTwitterVideo   ContentType = "twitter_video"
)

// Location is the enumerated region used for rate multipliers and for the
// counterparty's local currency.
type Location string

const (
	LocationUS        Location = "us"
	LocationUK        Location = "uk"
	LocationCanada    Location = "canada"
	LocationAustralia Location = "australia"
	LocationGermany   Location = "germany"
	LocationFrance    Location = "france"
	LocationJapan     Location = "japan"
	LocationBrazil    Location = "brazil"
	LocationIndia     Location = "india"
	LocationOther     Location = "other"
)

// platformConfig holds per-platform pricing constants: base rate units per
// content type plus engagement/follower weighting.
type platformConfig struct {
	name             string
	baseRates        map[ContentType]float64
	engagementWeight float64
	followerWeight   float64
}

func defaultPlatformConfigs() map[Platform]platformConfig {
	return map[Platform]platformConfig{
		PlatformInstagram: {
			name: "Instagram",
			baseRates: map[ContentType]float64{
				ContentInstagramPost:  1.0,
				ContentInstagramReel:  1.5,
				ContentInstagramStory: 0.3,
			},
			engagementWeight: 1.2,
			followerWeight:   1.0,
		},
		PlatformYouTube: {
			name: "YouTube",
			baseRates: map[ContentType]float64{
				ContentYouTubeLong:   2.0,
				ContentYouTubeShorts: 1.0,
			},
			engagementWeight: 1.5,
			followerWeight:   1.2,
		},
		PlatformLinkedIn: {
			name: "LinkedIn",
			baseRates: map[ContentType]float64{
				ContentLinkedInPost:  0.8,
				ContentLinkedInVideo: 1.3,
			},
			engagementWeight: 1.8,
			followerWeight:   0.8,
		},
		PlatformTikTok: {
			name: "TikTok",
			baseRates: map[ContentType]float64{
				ContentTikTokVideo: 1.2,
			},
			engagementWeight: 1.3,
			followerWeight:   1.1,
		},
		PlatformTwitter: {
			name: "Twitter",
			baseRates: map[ContentType]float64{
				ContentTwitterPost:  0.5,
				ContentTwitterVideo: 0.8,
			},
			engagementWeight: 1.0,
			followerWeight:   0.7,
		},
	}
}

// contentPlatforms maps each content type to its home platform.
var contentPlatforms = map[ContentType]Platform{
	ContentInstagramPost:  PlatformInstagram,
	ContentInstagramReel:  PlatformInstagram,
	ContentInstagramStory: PlatformInstagram,
	ContentYouTubeLong:    PlatformYouTube,
	ContentYouTubeShorts:  PlatformYouTube,
	ContentLinkedInPost:   PlatformLinkedIn,
	ContentLinkedInVideo:  PlatformLinkedIn,
	ContentTikTokVideo:    PlatformTikTok,
	ContentTwitterPost:    PlatformTwitter,
	ContentTwitterVideo:   PlatformTwitter,
}

// PlatformFor returns the home platform for a content type.
func PlatformFor(ct ContentType) (Platform, bool) {
	p, ok := contentPlatforms[ct]
	return p, ok
}

// locationMultipliers scale market rates by region. US is the observed
// ceiling, India the floor.
var locationMultipliers = map[Location]float64{
	LocationUS:        1.8,
	LocationUK:        1.6,
	LocationCanada:    1.5,
	LocationAustralia: 1.4,
	LocationGermany:   1.3,
	LocationFrance:    1.2,
	LocationJapan:     1.1,
	LocationBrazil:    0.8,
	LocationIndia:     0.6,
	LocationOther:     1.0,
}

// localCurrencies gives the currency counterparties in each region quote
// prices in when a message carries a bare numeral.
var localCurrencies = map[Location]string{
	LocationUS:        "USD",
	LocationUK:        "GBP",
	LocationCanada:    "CAD",
	LocationAustralia: "AUD",
	LocationGermany:   "EUR",
	LocationFrance:    "EUR",
	LocationJapan:     "JPY",
	LocationBrazil:    "BRL",
	LocationIndia:     "INR",
	LocationOther:     ReferenceCurrency,
}

// LocalCurrency returns the quoting currency for a region.
func LocalCurrency(loc Location) string {
	if c, ok := localCurrencies[loc]; ok {
		return c
	}
	return ReferenceCurrency
}

// DisplayName renders a content type for conversational text
// ("instagram_post" -> "Instagram Post").
func (ct ContentType) DisplayName() string {
	return titleWords(string(ct))
}

// DisplayName renders a platform name with vendor casing.
func (p Platform) DisplayName() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformTikTok:
		return "TikTok"
	}
	return titleWords(string(p))
}

func titleWords(s string) string {
	out := []byte(s)
	upper := true
	for i := 0; i < len(out); i++ {
		switch {
		case out[i] == '_':
			out[i] = ' '
			upper = true
		case upper && out[i] >= 'a' && out[i] <= 'z':
			out[i] -= 'a' - 'A'
			upper = false
		default:
			upper = false
		}
	}
	return string(out)
}
