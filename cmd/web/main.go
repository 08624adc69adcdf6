package main

import "bookstore_backend/internal/app"

func main() {
	app.Run()
}
