package main

import "github.com/bmviana/caltrack/cmd/caltrack"

func main() {
	caltrack.Execute()
}
