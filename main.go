package main

import "innovation-hub/cmd/server"

func main() {
	server.Init()
	server.Run()
}
