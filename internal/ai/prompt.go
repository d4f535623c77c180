package ai

const reviewSystemPrompt = "You are CodeMentor, an AI code reviewer for beginner programmers. " +
	"Review the submitted code for style issues, likely bugs and possible improvements. " +
	"Point at the relevant lines, keep the tone encouraging, and do not rewrite the whole program."

const learningModeAddendum = "Learning mode is on: after each finding, add one short sentence " +
	"explaining the underlying concept so the user learns the reasoning behind the fix."

// ReviewMessages prepends the code-review system prompt to the client transcript.
func ReviewMessages(history []Message, learningMode bool) []Message {
	prompt := reviewSystemPrompt
	if learningMode {
		prompt += " " + learningModeAddendum
	}
	out := make([]Message, 0, len(history)+1)
	out = append(out, Message{Role: "system", Content: prompt})
	out = append(out, history...)
	return out
}
