package util

import (
	"bufio"
	"bytes"
	"strings"

	"gitlab.com/golang-commonmark/markdown"
)

// raw HTML is escaped, article authors are not fully trusted
var markdownParser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// Markdown renders CommonMark to HTML. Leading tabs are removed from every line first, so indented text is not rendered as a code block.
func Markdown(src string) string {

	var unindented = &bytes.Buffer{}

	lineScanner := bufio.NewScanner(strings.NewReader(src))
	lineScanner.Buffer(nil, len(src)+1)
	for lineScanner.Scan() {
		unindented.WriteString(strings.TrimLeft(lineScanner.Text(), "\t"))
		unindented.WriteString("\n")
	}

	var result = &bytes.Buffer{}
	markdownParser.Render(result, unindented.Bytes())
	return result.String()
}
