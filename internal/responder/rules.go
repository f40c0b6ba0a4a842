package responder

import (
	"fmt"
	"regexp"
	"sync"

	"Showcase/entity"
)

const (
	IntentPrice        = "price"
	IntentDimensions   = "dimensions"
	IntentWarranty     = "warranty"
	IntentInstallation = "installation"
	IntentDelivery     = "delivery"
	IntentFeatures     = "features"
	IntentPorts        = "ports"
	IntentDescription  = "description"
	IntentAdvantages   = "advantages"
	IntentPower        = "power"
	IntentReviews      = "reviews"
	IntentFallback     = "fallback"
)

// Catch-all replies, also used as guidance when nothing specific matched.
const (
	FallbackEnglish  = "Sorry, please ask about price, features, description (or say \"short description\"), dimensions, warranty, installation, ports or delivery."
	FallbackGujarati = "માફ કરશો, કૃપા કરીને કિંમત, લક્ષણો, વર્ણન (અથવા \"સંક્ષિપ્ત વર્ણન\"), માપ, વોરંટી, ઇન્સ્ટોલેશન, પોર્ટ્સ અથવા ડિલિવરી વિષે પૂછો."
)

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// DefaultTable is the showcase rule set. Specific intents come before the
// catch-all, and earlier rules win when several match.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		defaultTable = MustTable(DefaultRules()...)
	})
	return defaultTable
}

func DefaultRules() []Rule {
	return []Rule{
		{
			Intent:  IntentPrice,
			Pattern: regexp.MustCompile(`(?i)(\bprice\b|\bcost\b|₹|rupee|દામ|કિંમત|ભાવ)`),
			Reply: bilingual(
				func(q Query) (string, error) {
					return fmt.Sprintf("Price (approx) for %s: %s. Ask in-store for EMI & exchange options.",
						titleOf(q.Product, q.Language), FormatPrice(q.Product.Price)), nil
				},
				func(q Query) (string, error) {
					return fmt.Sprintf("%s નો ભાવ (અંદાજિત): %s. EMI અને એક્સચેન્જ વિકલ્પો સ્ટોર પર તપાસો.",
						titleOf(q.Product, q.Language), FormatPrice(q.Product.Price)), nil
				},
			),
		},
		{
			Intent:  IntentDimensions,
			Pattern: regexp.MustCompile(`(?i)(\bdimension|dimensions|size|height|width|depth|માપ|ઊંચાઈ|પહોળાઈ|ઊંડાઈ)`),
			Reply: fieldReply(
				func(p *entity.Product) string { return p.Dimensions },
				"Dimensions: %s", "Typical dimensions (with stand): W 83.8 cm × H 60.4 cm × D 18.45 cm (estimate).",
				"માપ: %s", "સ્ટૅંડ સાથે માપ આશરે: પહોળાઈ 83.8 સેમી × ઊંચાઈ 60.4 સેમી × ઊંડાઈ 18.45 સેમી.",
			),
		},
		{
			Intent:  IntentWarranty,
			Pattern: regexp.MustCompile(`(?i)(\bwarranty|guarantee|service|વોરંટી|ગેરંટી)`),
			Reply: fieldReply(
				func(p *entity.Product) string { return p.Warranty },
				"Warranty: %s", "Warranty details are not available. Please check with the store.",
				"વોરંટી: %s", "વોરંટીની માહિતી ઉપલબ્ધ નથી. કૃપા કરીને સ્ટોરમાં તપાસો.",
			),
		},
		{
			Intent:  IntentInstallation,
			Pattern: regexp.MustCompile(`(?i)(\binstall|installation|setup|\bfit\b|ઇન્સ્ટોલ|સ્થાપન)`),
			Reply: fieldReply(
				func(p *entity.Product) string { return p.Installation },
				"Installation: %s", "Installation information is not available. Contact store for assistance.",
				"ઇન્સ્ટોલેશન: %s", "ઇન્સ્ટોલેશનની માહિતી ઉપલબ્ધ નથી. સહાય માટે સ્ટોરનો સંપર્ક કરો.",
			),
		},
		{
			Intent:  IntentDelivery,
			Pattern: regexp.MustCompile(`(?i)(\bdelivery|deliver|ship|shipping|dispatch|ડિલિવરી|ડિલિવર|મોકલવું|શિપમેન્ટ)`),
			Reply: fieldReply(
				func(p *entity.Product) string { return p.Delivery },
				"Delivery: %s", "Delivery information is not available. Check with store.",
				"ડિલિવરી: %s", "ડિલિવરીની માહિતી ઉપલબ્ધ નથી. કૃપા કરીને સ્ટોરમાં તપાસો.",
			),
		},
		{
			Intent:  IntentFeatures,
			Pattern: regexp.MustCompile(`(?i)(\bfeature|features|spec|specs|વિશેષતા|લક્ષણ|ફીચર)`),
			Reply: bilingual(
				func(q Query) (string, error) { return formatFeatures(q.Product, q.Language), nil },
				func(q Query) (string, error) { return formatFeatures(q.Product, q.Language), nil },
			),
		},
		{
			Intent:  IntentPorts,
			Pattern: regexp.MustCompile(`(?i)(\bport|ports|hdmi|usb|ethernet|audio|પોર્ટ)`),
			Reply: fieldReply(
				func(p *entity.Product) string { return p.Ports },
				"Ports: %s", "Includes HDMI, USB and audio ports; exact count varies by model. Check product label for details.",
				"પોર્ટ્સ: %s", "મોડેલ પર આધારિત HDMI, USB અને ઓડિયો પોર્ટ્સ ઉપલબ્ધ છે. વધુ વિગતો માટે પ્રોડક્ટ લેબલ જુઓ.",
			),
		},
		{
			Intent:  IntentDescription,
			Pattern: regexp.MustCompile(`(?i)(\bdescription|detail|describe|વિગત|વર્ણન)`),
			Reply: bilingual(
				func(q Query) (string, error) {
					return formatDescription(q.Product, q.Language, WantsShort(q.Text)), nil
				},
				func(q Query) (string, error) {
					return formatDescription(q.Product, q.Language, WantsShort(q.Text)), nil
				},
			),
		},
		{
			Intent:  IntentAdvantages,
			Pattern: regexp.MustCompile(`(?i)(\badvantage|why buy|compare|benefit|ફાયદો|ફાયદા)`),
			Reply: bilingual(
				func(q Query) (string, error) { return formatAdvantages(q.Product, q.Language), nil },
				func(q Query) (string, error) { return formatAdvantages(q.Product, q.Language), nil },
			),
		},
		{
			Intent:  IntentPower,
			Pattern: regexp.MustCompile(`(?i)(\bpower|watt|consumption|energy|વોટ|વીજ)`),
			Reply: fixed(
				"Typical operating power: ~70–200W depending on model & usage; standby <1W. Exact figures are on the spec label or manual.",
				"સામાન્ય ચલાવવાની વીજ વપરાશ ~70–200W મોડેલ અને ઉપયોગ પર આધાર રાખે છે; સ્ટેન્ડબાય <1W. ચોક્કસ આંકડા સ્પેક લેબલ અથવા મેન્યુઅલમાં જુઓ.",
			),
		},
		{
			Intent:  IntentReviews,
			Pattern: regexp.MustCompile(`(?i)(\breview|reviews|rating|customer feedback|પ્રતિસાદ|સમીક્ષા)`),
			Reply: fixed(
				"Common feedback: very good value for money, colors and sound praised; confirm peak brightness for very bright rooms before purchase.",
				"ગ્રાહક પ્રતિસાદ: કિંમત માટે સારું મૂલ્ય, રંગો અને અવાજની પ્રશંસા; ખૂબ તેજ રૂમ માટે પીક બ્રાઇટનેસ પુષ્ટિ કરો.",
			),
		},
		{
			Intent:  IntentFallback,
			Pattern: regexp.MustCompile(`(?s).*`),
			Reply:   fixed(FallbackEnglish, FallbackGujarati),
		},
	}
}

func bilingual(en, gu Producer) map[entity.Language]Producer {
	return map[entity.Language]Producer{
		entity.English:  en,
		entity.Gujarati: gu,
	}
}

func fixed(en, gu string) map[entity.Language]Producer {
	return bilingual(
		func(Query) (string, error) { return en, nil },
		func(Query) (string, error) { return gu, nil },
	)
}

// fieldReply formats an optional product field, or a default when it is empty.
func fieldReply(field func(*entity.Product) string, enFormat, enDefault, guFormat, guDefault string) map[entity.Language]Producer {
	reply := func(format, fallback string) Producer {
		return func(q Query) (string, error) {
			if v := field(q.Product); v != "" {
				return fmt.Sprintf(format, v), nil
			}
			return fallback, nil
		}
	}
	return bilingual(reply(enFormat, enDefault), reply(guFormat, guDefault))
}
