package cookbook

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the conventional name of a cookbook's ignore file.
const IgnoreFileName = "ignore"

// IgnoreSyntax selects how ignore-file lines are compiled.
type IgnoreSyntax int

const (
	// SyntaxRegexp compiles each line as a regexp matched anywhere in the
	// absolute file path.
	SyntaxRegexp IgnoreSyntax = iota
	// SyntaxGitignore compiles the file with gitignore rules matched against
	// the logical name.
	SyntaxGitignore
)

func (s IgnoreSyntax) String() string {
	if s == SyntaxGitignore {
		return "gitignore"
	}
	return "regexp"
}

// IgnoreRules is the compiled form of an ignore file.
// The zero value ignores nothing.
type IgnoreRules struct {
	regexps []*regexp.Regexp
	git     *ignore.GitIgnore
}

// Len returns the number of compiled regexp rules.
func (r IgnoreRules) Len() int {
	return len(r.regexps)
}

// Empty reports whether the rules can never match.
func (r IgnoreRules) Empty() bool {
	return len(r.regexps) == 0 && r.git == nil
}

// Matches reports whether any rule matches the file. Regexp rules look at the
// absolute path; gitignore rules look at the logical name.
func (r IgnoreRules) Matches(name, path string) bool {
	for _, re := range r.regexps {
		if re.MatchString(path) {
			return true
		}
	}
	if r.git != nil && r.git.MatchesPath(name) {
		return true
	}
	return false
}

// LoadIgnoreFile reads and compiles an ignore file. A missing or unreadable
// file yields empty rules. Lines that do not compile are reported to diag and
// skipped.
func LoadIgnoreFile(path string, syntax IgnoreSyntax, diag Diagnostics) IgnoreRules {
	if diag == nil {
		diag = Discard
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return IgnoreRules{}
	}

	if syntax == SyntaxGitignore {
		git, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			return IgnoreRules{}
		}
		return IgnoreRules{git: git}
	}

	f, err := os.Open(path)
	if err != nil {
		return IgnoreRules{}
	}
	defer f.Close()

	var rules IgnoreRules
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		re, err := regexp.Compile(line)
		if err != nil {
			diag.Warn("skipping invalid ignore pattern", "file", path, "line", lineNo, "err", err)
			continue
		}
		rules.regexps = append(rules.regexps, re)
	}
	if err := sc.Err(); err != nil {
		diag.Warn("ignore file read incomplete", "file", path, "err", err)
	}
	return rules
}
