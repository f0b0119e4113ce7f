package render

// Placeholder tokens recognised in a template.
const (
	TokenMainTitle    = "#MainTitle#"
	TokenStory        = "#Story#"
	TokenPlea         = "#Plea#"
	TokenFriends      = "#NumberofFriends#"
	TokenLikes        = "#NumberofLikes#"
	TokenFollowers    = "#NumberofFollowers#"
	TokenFamousPerson = "#FamousPerson#"
	TokenProfilePic   = "#ProfilePic#"
	TokenBannerPic    = "#BannerPic#"
	TokenTeamPic      = "#TeamPic#"
)

// Tokens returns every recognised token in the order Render substitutes them.
func Tokens() []string {
	return []string{
		TokenMainTitle,
		TokenStory,
		TokenPlea,
		TokenFriends,
		TokenLikes,
		TokenFollowers,
		TokenFamousPerson,
		TokenProfilePic,
		TokenBannerPic,
		TokenTeamPic,
	}
}

// VerifiedFragment is the verified badge markup shipped with the stock template.
const VerifiedFragment = `<a class="_56_f _5dzy _5d-1 _3twv _33v-" id="u_fetchstream_3_9" data-hovercard="u_fetchstream_3_9" data-hovercard-prefer-more-content-show="1" href="file:///C:/Users/Juanl/Desktop/WUNC/#" role="button" aria-describedby="u_fetchstream_3_b" aria-owns=""></a>`

// FamousFragment is the endorsement block shipped with the stock template.
// It holds the only #FamousPerson# token of that template.
const FamousFragment = `<div class="_3qn7 _61-0 _2fyi _3qnf _2pi9 _3-95" style="
    padding-top: 3px;
"><div class="_1xgg"><i class="_15y0 img sp_Op3MyGN4ZMD_1_5x sx_68ffa5"></i></div><span style="
    padding-left: 4px;
"><div><a rel="dialog" style="font-weight: bold;" role="button" id="u_0_1i">#FamousPerson#</a> supports this</div></span></div>`

// Fragments holds the markup removed when a Context flag is off.
// Both are matched verbatim, whitespace included.
type Fragments struct {
	// Verified is removed when Context.Verified is false.
	Verified string `json:"verified" mapstructure:"verified"`

	// Famous is removed when Context.FamousSupport is false.
	Famous string `json:"famous" mapstructure:"famous"`
}

// DefaultFragments returns the fragments matching the stock template.
func DefaultFragments() Fragments {
	return Fragments{
		Verified: VerifiedFragment,
		Famous:   FamousFragment,
	}
}
