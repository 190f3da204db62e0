package main

import "product-chatbot-be/internal/cli"

func main() {
	cli.Execute()
}
