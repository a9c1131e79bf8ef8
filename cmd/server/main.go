package main

import "perfai/internal/app/server"

func main() {
	server.Run()
}
