/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/BYT0723/opuscover/cmd"

func main() {
	cmd.Execute()
}
