package llm

// messagesRequest represents the Claude messages API request format.
type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature,omitempty"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
}

// message represents a message in the conversation.
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
