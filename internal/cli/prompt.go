// Package cli holds terminal helpers shared by the commands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ReadPassword reads a password from stdin. A terminal is read without echo;
// anything else (tests, pipes) is read one line at a time.
func ReadPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		bytePassword, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(bytePassword), nil
	}

	return ReadLine(stdin)
}

// ReadLine reads one line from r without its line terminator. A final line
// without a newline is returned as is.
func ReadLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// PromptPassword returns flagValue when set, otherwise prompts on stdout and
// reads from stdin. Blank passwords are rejected.
func PromptPassword(flagValue string, stdin io.Reader, stdout io.Writer) (string, error) {
	password := flagValue
	if password == "" {
		fmt.Fprint(stdout, "Password: ")
		var err error
		password, err = ReadPassword(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Fprintln(stdout) // Print newline after password input
	}
	if strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}
