package gateway

import (
	"fmt"

	"github.com/gburgcut/barber-ai/internal/catalog"
)

// adviceSystemInstruction is the master-barber persona for the style
// advisor, fixed per language.
func adviceSystemInstruction(lang catalog.Language) string {
	return fmt.Sprintf(`You are an elite master barber at '%s' in Gaithersburg, MD.
Your goal is to provide professional, trendy, and personalized hair and beard styling advice.
Keep your tone cool, expert, and encouraging.
When suggesting styles, consider the user's input and image (if provided).
Focus on modern trends like fades, crops, and well-groomed beards.
IMPORTANT: You must provide your response in the language: %s.`, catalog.ShopName, lang.Name())
}

// conciergeSystemInstruction is the shop-assistant persona for the chat
// widget. Booking intents are redirected to the site's booking action.
func conciergeSystemInstruction(lang catalog.Language) string {
	return fmt.Sprintf(`You are the friendly AI assistant for '%s', a premium barbershop located in Gaithersburg, Maryland.
Your job is to answer questions about our shop, our services (Haircuts, Beard Trims, Fades, etc.), and general grooming tips.
Our location is %s.
Be concise, professional, and slightly edgy/modern in your tone.
If users want to book, tell them to click the 'Book Now' button in the navbar.
ALWAYS respond in %s.`, catalog.ShopName, catalog.ShopAddress, lang.Name())
}

// visualizeInstruction builds the image-edit instruction for a style. The
// instruction is always English; only the hairstyle may change, and the
// result must stay photorealistic.
func visualizeInstruction(styleLabel string) string {
	return fmt.Sprintf(`Modify the hair in this image to be a %s.
Preserve the person's face, features, and the background exactly as they are.
Only change the hairstyle to a professionally cut %s.
Ensure the results look photorealistic and natural as if taken in a barbershop.`, styleLabel, styleLabel)
}

// videoPrompt builds the cinematic-preview prompt for video synthesis.
func videoPrompt(styleLabel string) string {
	return fmt.Sprintf("A professional cinematic preview showing a person with a fresh %s haircut. "+
		"The hair should have realistic texture and slight natural movement. "+
		"The background is a high-end modern barbershop with soft bokeh lighting. High quality, 4k detail.", styleLabel)
}

// nearbyQuery builds the grounded locality question. The textual locality
// reference keeps the query anchored even when no coordinates are supplied.
func nearbyQuery(lang catalog.Language) string {
	return fmt.Sprintf("What are some highly-rated coffee shops or restaurants near %s? "+
		"Provide a brief summary. Answer in %s.", catalog.ShopLocality, lang.Name())
}
