package render

// Context holds the values substituted into a template for one render.
// Counts are plain strings and are inserted exactly as given.
type Context struct {
	Title     string `json:"title" mapstructure:"title"`
	Story     string `json:"story" mapstructure:"story"`
	Plea      string `json:"plea" mapstructure:"plea"`
	Friends   string `json:"friends" mapstructure:"friends"`
	Likes     string `json:"likes" mapstructure:"likes"`
	Followers string `json:"followers" mapstructure:"followers"`

	// Verified keeps the verified badge fragment when true.
	Verified bool `json:"verified" mapstructure:"verified"`

	// FamousSupport keeps the endorsement fragment and fills in FamousPerson when true.
	FamousSupport bool   `json:"famous_support" mapstructure:"famous_support"`
	FamousPerson  string `json:"famous_person" mapstructure:"famous_person"`

	// Image paths are inserted as text, the files are never opened.
	ProfilePic string `json:"profile_pic" mapstructure:"profile_pic"`
	BannerPic  string `json:"banner_pic" mapstructure:"banner_pic"`
	TeamPic    string `json:"team_pic" mapstructure:"team_pic"`
}

// DefaultContext returns the example page values.
func DefaultContext() Context {
	return Context{
		Title:         "Example title",
		Story:         "This is the story",
		Plea:          "This is the plea",
		Friends:       "10",
		Likes:         "1,000",
		Followers:     "100,000",
		Verified:      true,
		FamousSupport: true,
		FamousPerson:  "Someone famous",
		ProfilePic:    "./images/pouting-face-emoji-by-google.png",
		BannerPic:     "./images/ows.jpg",
		TeamPic:       "./images/supporters.png",
	}
}
