/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/dmitriy-lar/SocialNetworkAPI/cmd"

func main() {
	cmd.Execute()
}
