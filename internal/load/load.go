// Package load reads the grammar file format, the on-disk collaborator
// spec.md's System Overview calls out of scope for the core: line 1 holds
// the production count k, the next k lines are "A -> X Y Z" productions
// (one non-terminal per line, space-separated right-hand-side symbols, "e"
// for an epsilon production), and every non-blank line after that is an
// input string to recognize, read until a line containing only the sentinel
// "e". Blank lines are skipped, so the empty string cannot be queued.
package load

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/predikt/internal/grammar"
	"github.com/dekarrin/predikt/internal/predikterr"
)

// File is the parsed contents of a grammar file: the grammar itself plus
// the input strings queued up to be recognized against it.
type File struct {
	Grammar *grammar.Grammar
	Inputs  []string
}

// FromPath opens and parses the grammar file at path.
func FromPath(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, predikterr.WrapLoad(err, "could not open grammar file "+path, "")
	}
	defer f.Close()

	return FromReader(f)
}

// FromReader parses a grammar file already open for reading, per this
// package's documented format.
func FromReader(r io.Reader) (File, error) {
	scanner := bufio.NewScanner(r)

	count, err := readProductionCount(scanner)
	if err != nil {
		return File{}, err
	}

	productions := make([]grammar.Production, 0, count)
	for n := 0; n < count; n++ {
		if !scanner.Scan() {
			return File{}, predikterr.Loadf("expected %d production lines, found %d", count, n)
		}
		prod, err := parseProductionLine(scanner.Text())
		if err != nil {
			return File{}, err
		}
		productions = append(productions, prod)
	}

	g, err := grammar.NewGrammar(productions)
	if err != nil {
		return File{}, predikterr.WrapLoad(err, "grammar file describes an invalid grammar", "")
	}

	var inputs []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == grammar.Epsilon {
			break
		}
		if line == "" {
			continue
		}
		inputs = append(inputs, line)
	}

	if err := scanner.Err(); err != nil {
		return File{}, predikterr.WrapLoad(err, "error reading grammar file", "")
	}

	return File{Grammar: g, Inputs: inputs}, nil
}

func readProductionCount(scanner *bufio.Scanner) (int, error) {
	if !scanner.Scan() {
		return 0, predikterr.Load("grammar file is empty", "")
	}
	line := strings.TrimSpace(scanner.Text())
	count, err := strconv.Atoi(line)
	if err != nil {
		return 0, predikterr.WrapLoad(err, "the first line must be an integer production count", "")
	}
	if count <= 0 {
		return 0, predikterr.Loadf("production count must be positive, got %d", count)
	}
	return count, nil
}

// parseProductionLine parses a single "A -> alpha" line. Multiple
// alternatives for the same left-hand side are not combined here; per the
// grammar file format they appear as separate lines, each counted in the
// header's production count.
func parseProductionLine(line string) (grammar.Production, error) {
	line = strings.TrimSpace(line)
	parts := strings.SplitN(line, "->", 2)
	if len(parts) != 2 {
		return grammar.Production{}, predikterr.Loadf("malformed production line %q: expected \"A -> alpha\"", line)
	}

	nt := strings.TrimSpace(parts[0])
	if nt == "" {
		return grammar.Production{}, predikterr.Loadf("malformed production line %q: missing left-hand side", line)
	}

	fields := strings.Fields(parts[1])
	if len(fields) == 1 && fields[0] == grammar.Epsilon {
		return grammar.Production{NonTerminal: nt}, nil
	}
	return grammar.Production{NonTerminal: nt, Symbols: fields}, nil
}
