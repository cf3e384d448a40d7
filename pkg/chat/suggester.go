// Package chat implements the rule-based assistant. It matches keyword
// buckets against the user's message and returns canned reply templates,
// personalized with the friend's name and noted favorites when available.
// The engine is pure; fetching the friend and their notes happens at the
// handler boundary.
package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/amity-app/amity/pkg/models"
)

const maxSuggestions = 3

var giftIdeas = []string{
	"A handwritten letter with a small care package",
	"A custom playlist of songs that remind you of them",
	"A book you think they would love",
	"A cozy blanket or mug with a personal touch",
	"A gift card to their favorite restaurant or store",
	"A framed photo of a memory you share",
	"A subscription to something they enjoy (coffee, streaming, etc.)",
}

var birthdayMessages = []string{
	"Wishing you the happiest of birthdays! Hope this year brings you everything you deserve.",
	"Happy birthday! So grateful to have you as a friend.",
	"Another year of being awesome — happy birthday!",
	"Happy birthday! Let's celebrate you today and every day.",
	"Cheers to another amazing year! Happy birthday, friend.",
}

var thankMessages = []string{
	"Just wanted to say thanks for being such an amazing friend. You really make a difference.",
	"I appreciate you more than you know. Thank you for always being there.",
	"Grateful for your friendship — you're one of the good ones.",
}

var checkinMessages = []string{
	"Hey! Just thinking about you — how have you been?",
	"It's been a while! Want to grab coffee/lunch sometime soon?",
	"Hope you're doing well! Just wanted to check in.",
	"Miss hanging out — let's catch up soon!",
}

var fallbackSuggestions = []string{
	"Try: 'Gift ideas for my friend'",
	"Try: 'Birthday wish for a close friend'",
	"Try: 'How to check in with a friend'",
}

// Suggester generates assistant replies. The random source is injected so
// tests get deterministic samples.
type Suggester struct {
	rng *rand.Rand
}

// NewSuggester creates a suggester seeded from the wall clock.
func NewSuggester() *Suggester {
	return NewSuggesterWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSuggesterWithSource creates a suggester with an explicit random source.
func NewSuggesterWithSource(src rand.Source) *Suggester {
	return &Suggester{rng: rand.New(src)}
}

// Reply produces the assistant's answer to a message. friend may be nil;
// favorites are the contents of the friend's "favorites" notes and are
// only used for gift replies.
func (s *Suggester) Reply(message string, friend *models.Friend, favorites []string) models.ChatResponse {
	lowered := strings.ToLower(message)

	switch {
	case containsAny(lowered, "gift", "present", "buy"):
		reply := "Here are some gift ideas:"
		if friend != nil {
			reply = fmt.Sprintf("Here are some gift ideas for %s:", friend.Name)
		}
		if len(favorites) > 0 {
			top := favorites
			if len(top) > 3 {
				top = top[:3]
			}
			reply += fmt.Sprintf("\n\nBased on your notes, they like: %s", strings.Join(top, ", "))
		}
		return models.ChatResponse{Reply: reply, Suggestions: s.sample(giftIdeas)}

	case containsAny(lowered, "birthday", "wish", "happy"):
		reply := "Here are some birthday message ideas:"
		if friend != nil {
			reply = fmt.Sprintf("Here are some birthday message ideas for %s:", friend.Name)
		}
		return models.ChatResponse{Reply: reply, Suggestions: s.sample(birthdayMessages)}

	case containsAny(lowered, "thank", "grateful", "appreciate"):
		return models.ChatResponse{
			Reply:       "Here are some ways to express gratitude:",
			Suggestions: append([]string(nil), thankMessages...),
		}

	case containsAny(lowered, "check in", "reach out", "say hi", "catch up"):
		return models.ChatResponse{
			Reply:       "Here are some ways to reach out:",
			Suggestions: s.sample(checkinMessages),
		}

	default:
		return models.ChatResponse{
			Reply:       "I can help you with gift ideas, birthday messages, thank you notes, or check-in messages. Try asking me something like 'gift ideas for their birthday' or 'how to say thank you'.",
			Suggestions: append([]string(nil), fallbackSuggestions...),
		}
	}
}

// sample picks up to maxSuggestions distinct entries in random order.
func (s *Suggester) sample(pool []string) []string {
	n := maxSuggestions
	if len(pool) < n {
		n = len(pool)
	}
	picked := s.rng.Perm(len(pool))[:n]
	out := make([]string, 0, n)
	for _, i := range picked {
		out = append(out, pool[i])
	}
	return out
}

func containsAny(message string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
