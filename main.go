package main

import "github.com/redactyl/credsweep/cmd/credsweep"

func main() { credsweep.Execute() }
