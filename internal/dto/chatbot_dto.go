package dto

type WelcomeResponse struct {
	Message string `json:"message"`
}

type ChatRequest struct {
	Msg string `form:"msg" json:"msg"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// ChatReply is the text shown to the user plus a tag describing how the
// pipeline ended.
type ChatReply struct {
	Response string
	Outcome  string
}
