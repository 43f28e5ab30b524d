package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/shyamraj/portfolio/internal/commands"
)

func main() {
	commands.Execute()
}
