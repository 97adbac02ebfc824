//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	appName = "storefront"
)

var Default = Build

// Build compiles the server into bin/.
func Build() error {
	mg.Deps(Tidy)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	out := filepath.Join(binDir, appName+exeSuffix())
	fmt.Println("Building:", out)

	env := map[string]string{"CGO_ENABLED": "0"}
	return sh.RunWithV(env, "go", "build", "-trimpath", "-o", out, "./cmd/server")
}

// Run starts the server with the environment (and .env) of the shell.
func Run() error {
	fmt.Println("Running storefront ...")
	return sh.RunV("go", "run", "./cmd/server")
}

func Test() error {
	fmt.Println("Testing...")
	return sh.RunV("go", "test", "-race", "./...", "-count=1")
}

func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

func exeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
