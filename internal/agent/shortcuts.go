package agent

import "regexp"

// Conversational shortcuts answered without touching any knowledge tier.
type shortcut struct {
	re       *regexp.Regexp
	kind     string
	response string
}

var shortcuts = []shortcut{
	{
		re:       regexp.MustCompile(`(?i)^\s*(hi+|hello+|hey+|howdy|sup|hiya|yo|good\s*(morning|afternoon|evening|night|day))\s*[!?.,]?\s*$`),
		kind:     "greet",
		response: "Hello! What can I help you with?",
	},
	{
		re:       regexp.MustCompile(`(?i)^\s*(bye+|goodbye|see\s*you|later|cya|farewell|good\s*night|take\s*care|ttyl)\s*[!?.,]?\s*$`),
		kind:     "bye",
		response: "Goodbye! Come back anytime.",
	},
	{
		re:       regexp.MustCompile(`(?i)^\s*(thank(s| you)+|ty|thx|cheers|much\s+appreciated|many\s+thanks)\s*(it|that|you|a\s+lot|so\s+much)?\s*[!.,]?\s*$`),
		kind:     "thanks",
		response: "You're welcome!",
	},
	{
		re:       regexp.MustCompile(`(?i)^\s*(ok(ay)?|sure|got\s*it|understood|alright|cool|great|nice|yep|yeah|yup|sounds\s+good|perfect|noted|makes\s+sense|i\s+see)\s*[!.,]?\s*$`),
		kind:     "ack",
		response: "Got it! What would you like to know?",
	},
	{
		re:       regexp.MustCompile(`(?i)(who|what)\s*(are|is)\s*(you|musage|mu\s*sage)\??`),
		kind:     "about",
		response: "I'm musage, a personal assistant that learns from your feedback.\nAsk me anything: facts, explanations, or how-tos.",
	},
	{
		re:   regexp.MustCompile(`(?i)^\s*(help|(i\s+)?(need|want)\s+(some\s+)?help|can\s+you\s+help|how\s+can\s+you\s+help(\s+me)?|what\s+can\s+you\s+do(\s+for\s+me)?)\s*[?!.]?\s*$`),
		kind: "help",
		response: "Here's what I can help with:\n" +
			"  - Facts and definitions: 'What is machine learning?'\n" +
			"  - How-to guides: 'How to reverse a list in Python'\n" +
			"  - Anything I answered wrong: tell me the correction and I'll remember it.\n" +
			"Just ask naturally.",
	},
}

// Wh-question prefixes are always real queries, never small talk.
var questionRe = regexp.MustCompile(`(?i)^\s*(what|how|why|when|where|who|which|explain|tell me about|describe|define)\b`)

// classifyShortcut returns the canned response for purely conversational
// input, or ok=false for anything that deserves the knowledge tiers.
func classifyShortcut(query string) (kind, response string, ok bool) {
	isQuestion := questionRe.MatchString(query)
	for _, s := range shortcuts {
		// "what is X" is a real query, but "who are you" and "what can
		// you do" still short-circuit.
		if isQuestion && s.kind != "about" && s.kind != "help" {
			continue
		}
		if s.re.MatchString(query) {
			return s.kind, s.response, true
		}
	}
	return "", "", false
}
