package main

import "github.com/openkyc/kyc/cmd/cli"

func main() {
	cli.Execute()
}
