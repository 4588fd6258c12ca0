package util

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ReadLine reads one line without the trailing newline. the last line of a file may have no newline.
func ReadLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(len(line) > 0 && errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
