// Package branding owns the white-label branding profile: a cache-first
// synchronous load at startup, asynchronous refresh from the remote
// source of truth, and application of theme side effects to connected
// storefront clients.
package branding

// Profile is the flat record of presentation settings for a white-label
// storefront. The wire format mirrors the remote API's branding payload;
// exactly one profile is live per process and it is always replaced
// wholesale, never mutated field by field.
type Profile struct {
	SiteName       string `json:"site_name" validate:"required"`
	LogoURL        string `json:"logo_url"`
	Theme          string `json:"theme" validate:"oneof=light dark"`
	PrimaryColor   string `json:"primary_color" validate:"hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"hexcolor"`
	AccentColor    string `json:"accent_color" validate:"hexcolor"`
	CardColor      string `json:"card_color" validate:"hexcolor"`

	HeroTitle       string `json:"hero_title"`
	HeroDescription string `json:"hero_description"`
	FooterText      string `json:"footer_text"`

	Feature1Title       string `json:"feature_1_title"`
	Feature1Description string `json:"feature_1_description"`
	Feature2Title       string `json:"feature_2_title"`
	Feature2Description string `json:"feature_2_description"`
	Feature3Title       string `json:"feature_3_title"`
	Feature3Description string `json:"feature_3_description"`

	BackgroundImageURL string `json:"background_image_url"`
}

// Default returns the hard-coded profile used until a snapshot or a
// successful fetch replaces it.
func Default() Profile {
	return Profile{
		SiteName:       "IPTV Billing",
		Theme:          "light",
		PrimaryColor:   "#2563eb",
		SecondaryColor: "#7c3aed",
		AccentColor:    "#059669",
		CardColor:      "#2563eb",

		HeroTitle:       "Premium IPTV Subscriptions",
		HeroDescription: "Access thousands of channels with our reliable IPTV service. Flexible plans, instant activation, 24/7 support.",
		FooterText:      "Premium IPTV Services",

		Feature1Title:       "Instant Activation",
		Feature1Description: "Get your credentials immediately after payment. Start watching within minutes.",
		Feature2Title:       "Multiple Connections",
		Feature2Description: "Watch on multiple devices simultaneously. Perfect for families.",
		Feature3Title:       "Flexible Plans",
		Feature3Description: "Choose from 1, 3, 6, or 12-month plans. Save more with longer subscriptions.",
	}
}

// ThemeState is the derived presentation state pushed to storefront
// clients: CSS custom properties, the document title, and the dark-mode
// flag. Deriving it is deterministic, so applying the same profile twice
// yields an identical state.
type ThemeState struct {
	CustomProperties map[string]string `json:"custom_properties"`
	DocumentTitle    string            `json:"document_title"`
	DarkMode         bool              `json:"dark_mode"`
}

// themeState derives the presentation state from a profile.
func themeState(p Profile) ThemeState {
	return ThemeState{
		CustomProperties: map[string]string{
			"--color-primary":   p.PrimaryColor,
			"--color-secondary": p.SecondaryColor,
			"--color-accent":    p.AccentColor,
		},
		DocumentTitle: p.SiteName,
		DarkMode:      p.Theme == "dark",
	}
}
