// repo-analyzer prints a quick activity snapshot of a GitHub repository:
// top contributors by commits and open/closed/stale pull request and issue counts.
//
// Usage:
//
//	GITHUB_LOGIN=me GITHUB_TOKEN=... repo-analyzer https://github.com/octocat/Hello-World -s 2024-01-01 -b main
package main

import (
	"github.com/naka-gawa/repo-analyzer/cmd"
)

func main() {
	cmd.Execute()
}
