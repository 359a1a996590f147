package constant

const (
	ChatSenderUser = "user"
	ChatSenderBot  = "bot"

	// DefaultSessionPrefix marks sessions that have not been auto-named yet.
	// Only sessions still carrying this prefix are eligible for renaming.
	DefaultSessionPrefix = "Chat "
	DefaultSessionLabel  = "Chat 1"

	SessionGreeting = "Hi, how can I help you today?"

	EmptyInputReply = "Please type something!"
)

// Fixed degraded replies for the completion boundary. Failures of the
// model dependency become chat content, never raised errors (the bot row
// is persisted with these strings as its body).
const (
	ReplyNotConfigured = "Bot: Sorry, the API key is not configured. Please contact the administrator."
	ReplySafetyBlocked = "Bot: Sorry, I can't answer that query as it violates safety guidelines. Please try a different question."
	ReplyNoCandidate   = "Bot: Sorry, I couldn't generate a valid response for that. Please try again later."
	ReplyConnectionErr = "Bot: A connection or API error occurred. Please contact the administrator."
	ReplyProcessing    = "Bot: Sorry, I couldn't process your request. Please try again later."
)

// SessionTitlePromptV1 asks the model for a short sidebar title from the
// first user message of a session.
const SessionTitlePromptV1 = `Generate a short 3-6 word descriptive title for a chat conversation that starts with the following user message. Respond with the title only: no quotation marks, no "Title:" prefix, no trailing punctuation.

User message: %s`
