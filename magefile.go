//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "flashy"

var Default = Build

// Build compiles the flashy binary into the repository root
func Build() error {
	return sh.RunV("go", "build", "-o", binary, "./cmd/flashy")
}

// Test runs all unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Install builds and installs flashy into $GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", "./cmd/flashy")
}

// Clean removes the built binary
func Clean() error {
	return os.RemoveAll(binary)
}
