//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "banglacsv"

// Default target to run when none is specified
var Default = Build

// Build compiles the banglacsv binary
func Build() error {
	mg.Deps(Vet)
	return sh.RunV("go", "build", "-o", binary, "./cmd/banglacsv")
}

// Install installs banglacsv into GOPATH/bin
func Install() error {
	return sh.RunV("go", "install", "./cmd/banglacsv")
}

// Test runs all unit tests with the race detector
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the tests that call the real translation services.
// They need OPENAI_API_KEY and GEMINI_API_KEY to be set.
func Integration() error {
	env := map[string]string{"BANGLACSV_NETWORK_TESTS": "1"}
	return sh.RunWithV(env, "go", "test", "-count=1", "./internal/translation/...", "./internal/models/...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts
func Clean() error {
	return os.RemoveAll(binary)
}
