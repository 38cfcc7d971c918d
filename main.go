/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/longkey1/runway/cmd"

func main() {
	cmd.Execute()
}
