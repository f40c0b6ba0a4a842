package responder

import (
	"fmt"
	"regexp"
	"strings"

	"Showcase/entity"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var indianEnglish = language.MustParse("en-IN")

// FormatPrice renders p in rupees with Indian digit grouping, e.g. ₹25,999.
func FormatPrice(p entity.Price) string {
	printer := message.NewPrinter(indianEnglish)
	return "₹" + printer.Sprintf("%v", number.Decimal(float64(p), number.MaxFractionDigits(2)))
}

var wantShort = regexp.MustCompile(`(?i)short|quick|summary|સંક્ષિપ્ત|સારાંશ`)

// WantsShort reports whether the question asks for the one-line description.
func WantsShort(text string) bool {
	return wantShort.MatchString(text)
}

func titleOf(p *entity.Product, lang entity.Language) string {
	if p.Title != "" {
		return p.Title
	}
	if lang == entity.Gujarati {
		return "આ પ્રોડક્ટ"
	}
	return "this product"
}

func formatFeatures(p *entity.Product, lang entity.Language) string {
	if len(p.Features) == 0 {
		if lang == entity.Gujarati {
			return "કોઈ વિશિષ્ટ લક્ષણો સૂચવાયેલા નથી."
		}
		return "No specific features listed."
	}
	header := "Key features:"
	if lang == entity.Gujarati {
		header = "મુખ્ય લક્ષણો:"
	}
	return header + "\n• " + strings.Join(p.Features, "\n• ")
}

func formatDescription(p *entity.Product, lang entity.Language, short bool) string {
	text := p.Description.In(lang)
	if text == "" {
		text = p.Title
	}
	if text == "" {
		if lang == entity.Gujarati {
			text = "વર્ણન ઉપલબ્ધ નથી."
		} else {
			text = "Description not available."
		}
	}
	if !short {
		return text
	}

	images := len(p.Images)
	if lang == entity.Gujarati {
		first := firstSentence(text, ".", "।")
		if images > 0 {
			return fmt.Sprintf("%s (%d છબી)", first, images)
		}
		return first
	}

	plural := "s"
	if images == 1 {
		plural = ""
	}
	return fmt.Sprintf("%s. (%d image%s available)", firstSentence(text, "."), images, plural)
}

// firstSentence returns text up to the first terminator, without it.
func firstSentence(text string, terminators ...string) string {
	cut := len(text)
	for _, t := range terminators {
		if i := strings.Index(text, t); i >= 0 && i < cut {
			cut = i
		}
	}
	if first := strings.TrimSpace(text[:cut]); first != "" {
		return first
	}
	return strings.TrimSpace(strings.Trim(text, "."))
}

func formatAdvantages(p *entity.Product, lang entity.Language) string {
	highlights := ""
	if n := len(p.Features); n > 0 {
		if n > 4 {
			n = 4
		}
		highlights = strings.Join(p.Features[:n], ", ")
	}
	if lang == entity.Gujarati {
		if highlights == "" {
			highlights = "શ્રેષ્ઠ કિંમત અને વિશ્વસનીય પ્રદર્શન"
		}
		return fmt.Sprintf("શા માટે ખરીદશો: %s. કિંમતના પ્રમાણમાં ઉત્તમ પ્રદર્શન અને મોડેલ-આધારિત સર્વિસ સપોર્ટ.", highlights)
	}
	if highlights == "" {
		highlights = "Great value and reliable performance"
	}
	return fmt.Sprintf("Why buy: %s. Strong picture/audio performance for the price and good after-sales support (model-dependent).", highlights)
}
