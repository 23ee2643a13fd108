package usecase

import "fmt"

// NotFoundPhrase is the exact fallback the backend is instructed to reply
// with when the answer is not derivable from the supplied text.
const NotFoundPhrase = "«این اطلاعات در متن موجود نیست.»"

const groundedTemplate = `تو یک دستیار پاسخ‌گویی هستی.
اول متن را در نظر بگیر و بعد به سؤال جواب بده.
اگر پاسخ در متن نبود، صریح بگو:
%s

متن:
%s

سؤال:
%s`

// BuildGroundedPrompt embeds the (already truncated) context text in the
// answer-from-text template and appends the question. Pure function.
func BuildGroundedPrompt(question, contextText string) string {
	return fmt.Sprintf(groundedTemplate, NotFoundPhrase, contextText, question)
}

// BuildOpenPrompt asks for a direct, clear answer with no context section.
func BuildOpenPrompt(question string) string {
	return "به این سؤال دقیق و واضح جواب بده:\n" + question
}
