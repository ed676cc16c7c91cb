package main

import "github.com/n0emo/cpp-project-init/cmd"

func main() {
	cmd.Execute()
}
