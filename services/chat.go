package services

import (
	"fmt"
	"strings"
)

// ChatAction tells the frontend what to do after a reply, e.g. navigate to a
// search page.
type ChatAction struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Text    string       `json:"text"`
	Actions []ChatAction `json:"actions"`
}

var (
	hotelKeywords    = []string{"hotel", "hôtel", "hébergement", "logement", "dormir", "sejour", "séjour"}
	flightKeywords   = []string{"vol", "vols", "avion", "billet", "voler", "partir", "aller"}
	activityKeywords = []string{"activité", "activite", "visite", "faire", "attraction", "chose", "excursion", "tour"}

	// French prepositions that introduce a destination.
	destinationPrepositions = []string{"à", "a", "pour", "vers", "sur", "en", "au"}

	knownCities = []string{
		"paris", "londres", "barcelone", "madrid", "rome",
		"lisbonne", "bruges", "amsterdam", "berlin", "vienne",
	}
)

// Converse runs keyword intent detection over a user message and builds a
// reply plus navigation actions. Purely local; no model call.
func Converse(message string) ChatReply {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, hotelKeywords):
		if dest := extractDestination(lower); dest != "" {
			return navigateReply(
				fmt.Sprintf("Parfait ! Je vais vous trouver les meilleurs hôtels à %s. Laissez-moi rechercher...", capitalize(dest)),
				"/hotels?destination="+dest,
			)
		}
		return ChatReply{Text: "Pour quelle destination souhaitez-vous rechercher des hôtels ?", Actions: []ChatAction{}}

	case containsAny(lower, flightKeywords):
		if dest := extractDestination(lower); dest != "" {
			return navigateReply(
				fmt.Sprintf("Parfait ! Je vais vous trouver les meilleurs vols pour %s. Laissez-moi rechercher...", capitalize(dest)),
				"/vols?destination="+dest,
			)
		}
		return ChatReply{Text: "Pour quelle destination souhaitez-vous rechercher des vols ?", Actions: []ChatAction{}}

	case containsAny(lower, activityKeywords):
		if dest := extractDestination(lower); dest != "" {
			return navigateReply(
				fmt.Sprintf("Parfait ! Je vais vous trouver les meilleures activités à %s. Laissez-moi rechercher...", capitalize(dest)),
				"/activites?destination="+dest,
			)
		}
		return ChatReply{Text: "Pour quelle destination souhaitez-vous rechercher des activités ?", Actions: []ChatAction{}}
	}

	return ChatReply{
		Text: "Bonjour ! Je suis votre assistant voyage. Je peux vous aider à trouver des vols, des hôtels ou des activités pour votre prochaine destination. " +
			`Par exemple, dites-moi "Je veux un vol pour Paris" ou "Trouve-moi des hôtels à Barcelone".`,
		Actions: []ChatAction{},
	}
}

// extractDestination finds the word following a destination preposition, or
// a known city name mentioned anywhere.
func extractDestination(message string) string {
	words := strings.Fields(message)
	for i, word := range words {
		if isPreposition(word) && i+1 < len(words) {
			return strings.ToLower(strings.Trim(words[i+1], ".,!?;"))
		}
	}

	for _, city := range knownCities {
		if strings.Contains(message, city) {
			return city
		}
	}
	return ""
}

func navigateReply(text, url string) ChatReply {
	return ChatReply{
		Text:    text,
		Actions: []ChatAction{{Type: "navigate", URL: url}},
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isPreposition(word string) bool {
	for _, p := range destinationPrepositions {
		if word == p {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
