//go:build mage

// Package main provides build targets for ididit using Mage.
//
// Usage:
//
//	mage build    Compile the ididit binary to bin/
//	mage test     Run all tests
//	mage e2e      Build, then run the end-to-end workflow tests
//	mage lint     Run golangci-lint
//	mage clean    Remove build artifacts
//	mage install  Install ididit to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "ididit"
	binaryDir  = "bin"
	cmdDir     = "./cmd/ididit"
)

// Build compiles the ididit binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// E2E builds first, then runs the workflow tests against the binary.
func E2E() error {
	mg.Deps(Build)
	bin, err := filepath.Abs(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return err
	}
	return sh.RunWithV(map[string]string{"IDIDIT_BIN": bin}, "go", "test", "-tags", "e2e", "./tests/e2e/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}
