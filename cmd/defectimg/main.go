// Package main provides the defectimg CLI, which runs the defect image pipeline on local files.
//
// Usage:
//
//	defectimg process scratch.png dent.jpg --out ./variants
package main

func main() {
	Execute()
}
