//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Demo groups targets that exercise the CLI against the files in testdata/.
type Demo mg.Namespace

const demoDir = "testdata/demo"

// Transform prints the boosted form of a sample query using the demo boost file.
func (Demo) Transform() error {
	mg.Deps(Build)
	fmt.Println("[demo] transform")
	return sh.RunV(binPath, "transform", "--boost", demoDir+"/boost.yaml", `dark matter "rotation curve"`)
}

// Reconcile compares the demo baseline and boosted result lists.
func (Demo) Reconcile() error {
	mg.Deps(Build)
	fmt.Println("[demo] reconcile")
	return sh.RunV(binPath, "reconcile",
		"--original", demoDir+"/baseline.yaml",
		"--boosted", demoDir+"/boosted.yaml")
}

// Run runs a full experiment through the file backend.
func (Demo) Run() error {
	mg.Deps(Build)
	fmt.Println("[demo] run")
	return sh.RunV(binPath, "run", "--no-history",
		"--backend", "file",
		"--baseline-file", demoDir+"/baseline.yaml",
		"--boosted-file", demoDir+"/boosted.yaml",
		"--boost", demoDir+"/boost.yaml",
		"dark matter")
}
