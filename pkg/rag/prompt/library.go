// Package prompt is the named library of prompt templates used for answer
// generation.
package prompt

import (
	"fmt"
	"strings"
)

type Name string

const ProductBot Name = "product_bot"

// Template renders a prompt from retrieved context and the user's question.
type Template func(context, question string) string

var library = map[Name]Template{
	ProductBot: productBot,
}

func productBot(context, question string) string {
	var b strings.Builder
	b.WriteString("You are an expert EcommerceBot specialized in product recommendations and handling customer queries.\n")
	b.WriteString("Analyze the provided product titles, ratings, and reviews to provide accurate, helpful responses.\n")
	b.WriteString("Stay relevant to the context, and keep your answers concise and informative.\n\n")
	b.WriteString("IMPORTANT: If the context is empty or contains no relevant product information, ")
	b.WriteString("politely explain that you don't have access to product data and suggest the user try a different search term or contact support.\n\n")
	b.WriteString("CONTEXT:\n")
	b.WriteString(context)
	b.WriteString("\n\nQUESTION: ")
	b.WriteString(question)
	b.WriteString("\n\nYOUR ANSWER:\n")
	return b.String()
}

func Lookup(name Name) (Template, bool) {
	t, ok := library[name]
	return t, ok
}

func Render(name Name, context, question string) (string, error) {
	t, ok := Lookup(name)
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", name)
	}
	return t(context, question), nil
}

// JoinContext concatenates retrieved document contents the way the
// templates expect them.
func JoinContext(contents []string) string {
	return strings.Join(contents, "\n\n")
}
