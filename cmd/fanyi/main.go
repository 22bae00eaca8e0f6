package main

import (
	"os"

	"horse.fit/fanyi/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
