package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// GetLines returns the text under node where <br> and block level children
// each end a line, this is how sample tests are laid out.
func GetLines(node *html.Node) string {
	var buffer bytes.Buffer
	getLinesRecursive(node, &buffer)
	return strings.Trim(buffer.String(), "\n")
}

func getLinesRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		buffer.WriteString(node.Data)
		return
	case html.ElementNode:
		if node.Data == "br" {
			buffer.WriteByte('\n')
			return
		}
	}
	child := node.FirstChild
	for child != nil {
		getLinesRecursive(child, buffer)
		child = child.NextSibling
	}
	if node.Type == html.ElementNode && node.Data == "div" {
		if buffer.Len() > 0 && buffer.Bytes()[buffer.Len()-1] != '\n' {
			buffer.WriteByte('\n')
		}
	}
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// removeNonPrintable also turns every kind of space, like &nbsp;, into a
// plain space.
func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsSpace(c) {
			newStr.WriteRune(' ')
			continue
		}
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText trims a piece of visible text and collapses inner whitespace.
func CleanText(s string) string {
	s = removeNonPrintable(s)
	s = strings.TrimSpace(s)
	return innerWhitespace.ReplaceAllString(s, " ")
}
