package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var stdin = bufio.NewReader(os.Stdin)

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt asks for a single line on stdin.
func prompt(out io.Writer, question string) (string, error) {
	fmt.Fprint(out, question)
	line, err := readLine(stdin)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.TrimSpace(question), ":"), err)
	}
	return strings.TrimSpace(line), nil
}

// promptSecret asks for a line without echoing it when stdin is a terminal.
func promptSecret(out io.Writer, question string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(out, question)
	}
	fmt.Fprint(out, question)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read secret: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}
