package runner

import (
	"os"
	"path/filepath"
	"strings"
)

// shellWords are builtins and reserved words of POSIX sh, bash and ash that
// never resolve on PATH.
var shellWords = map[string]bool{
	"!": true, ".": true, ":": true, "[": true, "[[": true, "]]": true,
	"{": true, "}": true,
	"alias": true, "bg": true, "bind": true, "break": true, "builtin": true,
	"caller": true, "case": true, "cd": true, "command": true,
	"compgen": true, "complete": true, "continue": true, "coproc": true,
	"declare": true, "dirs": true, "disown": true, "do": true, "done": true,
	"echo": true, "elif": true, "else": true, "enable": true, "esac": true,
	"eval": true, "exec": true, "exit": true, "export": true, "false": true,
	"fc": true, "fg": true, "fi": true, "for": true, "function": true,
	"getopts": true, "hash": true, "help": true, "history": true, "if": true,
	"in": true, "jobs": true, "kill": true, "let": true, "local": true,
	"logout": true, "mapfile": true, "popd": true, "printf": true,
	"pushd": true, "pwd": true, "read": true, "readarray": true,
	"readonly": true, "return": true, "select": true, "set": true,
	"shift": true, "shopt": true, "source": true, "suspend": true,
	"test": true, "then": true, "time": true, "times": true, "trap": true,
	"true": true, "type": true, "typeset": true, "ulimit": true,
	"umask": true, "unalias": true, "unset": true, "until": true,
	"wait": true, "while": true,
}

// programName extracts the program a shell command line starts with. It
// only reports a name when the first word can mean nothing but a program:
// plain path characters, not a shell word and not a function definition.
// Anything else is left to the shell and to notFoundName.
func programName(command string) (string, bool) {
	line := strings.TrimLeft(command, " \t\r\n")
	end := strings.IndexFunc(line, func(r rune) bool { return !isPathChar(r) })
	if end < 0 {
		end = len(line)
	}
	word, rest := line[:end], line[end:]
	if word == "" || shellWords[word] {
		return "", false
	}

	// the word must be terminated by a blank, an operator or the line end
	if rest != "" && !strings.ContainsRune(" \t\r\n;&|<>", rune(rest[0])) {
		return "", false
	}
	// f () { ...; }
	if strings.HasPrefix(strings.TrimLeft(rest, " \t"), "(") {
		return "", false
	}
	return word, true
}

func isPathChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("._/+-@%,:", r)
}

// Suffixes shells print when a command cannot be found, as in
// "sh: 1: foo: not found" (dash, ash) or "bash: line 1: foo: command not
// found" and "sh: line 1: ./foo: No such file or directory" (bash).
var notFoundSuffixes = []string{": command not found", ": not found", ": No such file or directory"}

// notFoundName recovers the missing program from the shell's diagnostics
// of a command that exited with status 127.
func notFoundName(stderr []byte) (string, bool) {
	lines := strings.Split(strings.TrimRight(string(stderr), "\r\n"), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimRight(lines[i], "\r ")
		for _, suffix := range notFoundSuffixes {
			rest, ok := strings.CutSuffix(line, suffix)
			if !ok {
				continue
			}
			if j := strings.LastIndex(rest, ": "); j >= 0 {
				rest = rest[j+2:]
			}
			if rest == "" || strings.ContainsAny(rest, " \t") {
				return "", false
			}
			return rest, true
		}
	}
	return "", false
}

// relativeSearchPath reports whether PATH has entries that resolve against
// the working directory, which differs from ours when Runner.Dir is set.
func relativeSearchPath() bool {
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" || !filepath.IsAbs(dir) {
			return true
		}
	}
	return false
}
