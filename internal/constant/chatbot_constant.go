package constant

const (
	WelcomeMessage = "Welcome to the Product Information Bot API. Use the /get endpoint to chat with the bot."

	NoResultsMessage = "I'm sorry, I couldn't find any relevant product information for your query. Please try a different search term or make sure the product database has been populated."

	// TechnicalDifficultiesPrefix is followed by the underlying error text.
	TechnicalDifficultiesPrefix = "I'm experiencing technical difficulties. Error: "

	// VerifyQuery is the probe question used by the setup CLI.
	VerifyQuery = "Can you suggest good budget laptops?"
)

const (
	OutcomeAnswered           = "answered"
	OutcomeNoResults          = "no_results"
	OutcomeProviderError      = "provider_error"
	OutcomeConfigurationError = "configuration_error"

	ChatOutcomeHeader = "X-Chat-Outcome"
)
