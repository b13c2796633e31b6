package constant

const (
	ChatMessageRoleUser  = "user"
	ChatMessageRoleModel = "model"

	// DefaultLanguage is used when a request's language has no authored
	// content or canned messages.
	DefaultLanguage = "en"
)
