package entity

// PageView is everything the showcase page renders for one product.
type PageView struct {
	Found      bool           `json:"found"`
	Key        string         `json:"key,omitempty"`
	Title      string         `json:"title"`
	SizeText   string         `json:"size_text"`
	PriceLabel string         `json:"price_label,omitempty"`
	Brand      string         `json:"brand,omitempty"`
	Images     []GalleryImage `json:"images"`
	Logo       LogoView       `json:"logo"`
	Carousel   int            `json:"carousel"`
	Language   Language       `json:"lang"`
	PanelHint  string         `json:"panel_hint,omitempty"`
}

type GalleryImage struct {
	Name string `json:"name"`
	Src  string `json:"src"`
	Alt  string `json:"alt"`
}

type LogoView struct {
	Src      string `json:"src,omitempty"`
	Fallback bool   `json:"fallback"`
}

// Welcome is the spoken greeting shown when the assistant is opened.
type Welcome struct {
	Text      string `json:"text"`
	Speak     bool   `json:"speak"`
	SpeechTag string `json:"speech_tag"`
}
